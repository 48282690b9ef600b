// Package kmer provides k-mer counting and k-mer based sequence distances.
//
// K-mers are residue substrings of length k. Counting is case-insensitive;
// k-mers containing an ignored residue (for example a gap) are skipped.
package kmer

import (
	"fmt"
	"sort"
)

// KMerCount pairs a k-mer with the number of times it was seen.
type KMerCount struct {
	KMer  string
	Count int
}

// Counter accumulates k-mer counts over one or more sequences.
type Counter struct {
	K      int
	Counts map[string]int
	Total  int
	// Ignore lists residues that invalidate any k-mer containing them.
	Ignore string
}

// NewCounter returns an empty counter for k-mers of length k. Gap symbols
// are ignored.
func NewCounter(k int) (*Counter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	return &Counter{
		K:      k,
		Counts: make(map[string]int),
		Ignore: "-",
	}, nil
}

// Add records count occurrences of kmer.
func (c *Counter) Add(kmer []byte, count int) error {
	if len(kmer) != c.K {
		return fmt.Errorf("k-mer length %d doesn't match k=%d", len(kmer), c.K)
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive")
	}

	c.Counts[string(upper(kmer))] += count
	c.Total += count
	return nil
}

// Count adds every valid k-mer of seq.
func (c *Counter) Count(seq []byte) {
	norm := upper(seq)
	last := -1
	for i, r := range norm {
		if c.ignored(r) {
			last = i
			continue
		}
		if start := i - c.K + 1; start > last && start >= 0 {
			c.Counts[string(norm[start:i+1])]++
			c.Total++
		}
	}
}

func (c *Counter) ignored(r byte) bool {
	for i := 0; i < len(c.Ignore); i++ {
		if c.Ignore[i] == r {
			return true
		}
	}
	return false
}

// GetCount returns how often kmer was seen, case-insensitively.
func (c *Counter) GetCount(kmer []byte) (int, error) {
	if len(kmer) != c.K {
		return 0, fmt.Errorf("k-mer length doesn't match k=%d", c.K)
	}
	return c.Counts[string(upper(kmer))], nil
}

// UniqueCount returns the number of distinct k-mers.
func (c *Counter) UniqueCount() int {
	return len(c.Counts)
}

// MostFrequent returns the n most frequent k-mers, ties broken
// lexicographically.
func (c *Counter) MostFrequent(n int) ([]KMerCount, error) {
	if n <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}

	counts := make([]KMerCount, 0, len(c.Counts))
	for kmer, count := range c.Counts {
		counts = append(counts, KMerCount{KMer: kmer, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].KMer < counts[j].KMer
	})

	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n], nil
}

// Frequency is the share of all counted k-mers that equal kmer.
func (c *Counter) Frequency(kmer []byte) (float64, error) {
	if c.Total == 0 {
		return 0.0, nil
	}
	count, err := c.GetCount(kmer)
	if err != nil {
		return 0, err
	}
	return float64(count) / float64(c.Total), nil
}

// Merge adds the counts of other, which must use the same k.
func (c *Counter) Merge(other *Counter) error {
	if c.K != other.K {
		return fmt.Errorf("cannot merge k=%d counter into k=%d", other.K, c.K)
	}

	for kmer, count := range other.Counts {
		c.Counts[kmer] += count
		c.Total += count
	}
	return nil
}

func (c *Counter) String() string {
	return fmt.Sprintf("KMerCounter { k: %d, unique: %d, total: %d }", c.K, c.UniqueCount(), c.Total)
}

// CountKMers counts the k-mers of a single sequence.
func CountKMers(seq []byte, k int) (*Counter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}
	if k > len(seq) {
		return nil, fmt.Errorf("k=%d exceeds sequence length %d", k, len(seq))
	}

	counter, err := NewCounter(k)
	if err != nil {
		return nil, err
	}
	counter.Count(seq)
	return counter, nil
}

func upper(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
