package msa

import (
	"context"
	"fmt"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/kmer"
)

// Distance selects how pairwise distances for the guide tree are computed.
type Distance int

const (
	// DistanceIdentity globally aligns every pair and uses 1 - identity.
	DistanceIdentity Distance = iota
	// DistanceKmer uses the Jaccard distance of k-mer sets. It skips the
	// all-pairs alignment step entirely.
	DistanceKmer
)

var distanceNames = []string{"identity", "kmer"}

func (d Distance) String() string {
	if d < 0 || int(d) >= len(distanceNames) {
		return "unknown"
	}
	return distanceNames[d]
}

// ParseDistance parses "identity" or "kmer". The empty string selects
// DistanceIdentity.
func ParseDistance(s string) (Distance, error) {
	switch s {
	case "", "identity":
		return DistanceIdentity, nil
	case "kmer":
		return DistanceKmer, nil
	}
	return 0, &alignment.ConfigError{Field: "distance", Value: s, Reason: "unknown distance", Valid: distanceNames}
}

// DistanceMatrix returns the symmetric N x N matrix of 1 - identity over
// global alignments of every distinct pair. Pairs run in parallel on the
// aligner's worker limit.
func DistanceMatrix(ctx context.Context, aligner *alignment.Aligner, seqs [][]byte) ([][]float64, error) {
	n := len(seqs)
	pairs := make([]alignment.Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, alignment.Pair{Query: seqs[i], Target: seqs[j]})
		}
	}

	alns, err := aligner.AlignBatch(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("pairwise distances: %w", err)
	}

	dist := square(n)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 1 - alns[k].Identity
			dist[i][j], dist[j][i] = d, d
			k++
		}
	}
	return dist, nil
}

// KmerDistanceMatrix returns Jaccard distances over k-mer sets. k is clamped
// to the shortest sequence length.
func KmerDistanceMatrix(seqs [][]byte, k int) ([][]float64, error) {
	for _, s := range seqs {
		if len(s) < k {
			k = len(s)
		}
	}
	if k < 1 {
		return nil, &alignment.InputError{Arg: "sequences", Reason: "sequence is empty"}
	}
	return kmer.DistanceMatrix(seqs, k)
}

func square(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
