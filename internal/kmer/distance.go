package kmer

import (
	"fmt"
	"math"
	"sort"
)

func counterPair(seq1, seq2 []byte, k int) (*Counter, *Counter, error) {
	if k <= 0 {
		return nil, nil, fmt.Errorf("k must be positive")
	}
	if k > len(seq1) || k > len(seq2) {
		return nil, nil, fmt.Errorf("k=%d cannot exceed sequence lengths %d and %d", k, len(seq1), len(seq2))
	}

	c1, err := CountKMers(seq1, k)
	if err != nil {
		return nil, nil, err
	}
	c2, err := CountKMers(seq2, k)
	if err != nil {
		return nil, nil, err
	}
	return c1, c2, nil
}

// JaccardDistance is 1 - |A∩B|/|A∪B| over the k-mer sets of both
// sequences.
func JaccardDistance(seq1, seq2 []byte, k int) (float64, error) {
	c1, c2, err := counterPair(seq1, seq2, k)
	if err != nil {
		return 0, err
	}
	return c1.JaccardDistance(c2), nil
}

// JaccardDistance compares the k-mer sets of two counters.
func (c *Counter) JaccardDistance(other *Counter) float64 {
	intersection := 0
	for kmer := range c.Counts {
		if _, ok := other.Counts[kmer]; ok {
			intersection++
		}
	}

	union := len(c.Counts) + len(other.Counts) - intersection
	if union == 0 {
		return 0.0
	}
	return 1.0 - float64(intersection)/float64(union)
}

// SharedKMers returns the k-mers present in both sequences, sorted.
func SharedKMers(seq1, seq2 []byte, k int) ([]string, error) {
	c1, c2, err := counterPair(seq1, seq2, k)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0)
	for kmer := range c1.Counts {
		if _, ok := c2.Counts[kmer]; ok {
			result = append(result, kmer)
		}
	}
	sort.Strings(result)
	return result, nil
}

// CosineDistance calculates the cosine distance between k-mer count
// vectors.
func CosineDistance(seq1, seq2 []byte, k int) (float64, error) {
	c1, c2, err := counterPair(seq1, seq2, k)
	if err != nil {
		return 0, err
	}

	var dotProduct, mag1, mag2 float64
	for kmer, n := range c1.Counts {
		v1 := float64(n)
		dotProduct += v1 * float64(c2.Counts[kmer])
		mag1 += v1 * v1
	}
	for _, n := range c2.Counts {
		mag2 += float64(n) * float64(n)
	}

	if mag1 == 0 || mag2 == 0 {
		return 1.0, nil
	}
	return 1.0 - dotProduct/(math.Sqrt(mag1)*math.Sqrt(mag2)), nil
}

// DistanceMatrix returns the symmetric Jaccard distance matrix of seqs.
// Each sequence is counted once.
func DistanceMatrix(seqs [][]byte, k int) ([][]float64, error) {
	n := len(seqs)
	if n == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	counters := make([]*Counter, n)
	for i, s := range seqs {
		c, err := CountKMers(s, k)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		counters[i] = c
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := counters[i].JaccardDistance(counters[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix, nil
}
