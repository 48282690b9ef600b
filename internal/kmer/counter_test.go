package kmer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		wantErr bool
	}{
		{"valid k=3", 3, false},
		{"valid k=21", 21, false},
		{"invalid k=0", 0, true},
		{"invalid k=-1", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter, err := NewCounter(tt.k)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.k, counter.K)
			}
		})
	}
}

func TestCounterCount(t *testing.T) {
	counter, err := NewCounter(3)
	require.NoError(t, err)

	counter.Count([]byte("ATGATGATG"))

	// ATG, TGA, GAT, ATG, TGA, GAT, ATG
	assert.Equal(t, 3, counter.UniqueCount())
	assert.Equal(t, 7, counter.Total)

	count, err := counter.GetCount([]byte("atg"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = counter.GetCount([]byte("TGA"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = counter.GetCount([]byte("AT"))
	assert.Error(t, err)
}

func TestCounterSkipsIgnored(t *testing.T) {
	counter, err := NewCounter(3)
	require.NoError(t, err)

	counter.Count([]byte("AC-GTACG"))

	// windows crossing the gap are dropped: GTA, TAC, ACG
	assert.Equal(t, 3, counter.Total)
	assert.Equal(t, 3, counter.UniqueCount())

	counter.Ignore = "N"
	counter.Count([]byte("ANNNC"))
	assert.Equal(t, 3, counter.Total)
}

func TestMostFrequent(t *testing.T) {
	counter, err := CountKMers([]byte("ATGATGATG"), 3)
	require.NoError(t, err)

	top, err := counter.MostFrequent(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, KMerCount{KMer: "ATG", Count: 3}, top[0])
	assert.Equal(t, KMerCount{KMer: "GAT", Count: 2}, top[1])

	_, err = counter.MostFrequent(0)
	assert.Error(t, err)
}

func TestFrequency(t *testing.T) {
	counter, err := CountKMers([]byte("AAAA"), 2)
	require.NoError(t, err)

	freq, err := counter.Frequency([]byte("AA"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, freq)
}

func TestMerge(t *testing.T) {
	c1, err := CountKMers([]byte("ATGC"), 2)
	require.NoError(t, err)
	c2, err := CountKMers([]byte("ATAT"), 2)
	require.NoError(t, err)

	require.NoError(t, c1.Merge(c2))
	assert.Equal(t, 6, c1.Total)
	assert.Equal(t, 3, c1.Counts["AT"])

	c3, _ := NewCounter(3)
	assert.Error(t, c1.Merge(c3))
}

func TestCountKMersTooShort(t *testing.T) {
	_, err := CountKMers([]byte("AC"), 3)
	assert.Error(t, err)
}

func TestJaccardDistance(t *testing.T) {
	seq1 := []byte("ATGCATGC")

	dist, err := JaccardDistance(seq1, []byte("atgcatgc"), 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)

	dist, err = JaccardDistance(seq1, []byte("GGGGGGGG"), 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist)

	// {ATG,TGC,GCA,CAT} vs {ATG,TGC,GCG,CGG,GGG}: 2 shared of 7
	dist, err = JaccardDistance(seq1, []byte("ATGCGGGG"), 3)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/7.0, dist, 1e-9)
}

func TestSharedKMers(t *testing.T) {
	shared, err := SharedKMers([]byte("ATGCATGC"), []byte("ATGCGGGG"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"ATG", "TGC"}, shared)
}

func TestCosineDistance(t *testing.T) {
	dist, err := CosineDistance([]byte("ACGTACGT"), []byte("ACGTACGT"), 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dist, 1e-9)

	dist, err = CosineDistance([]byte("AAAA"), []byte("CCCC"), 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dist, 1e-9)
}

func TestDistanceMatrix(t *testing.T) {
	seqs := [][]byte{[]byte("ATGCATGC"), []byte("ATGCATGC"), []byte("GGGGGGGG")}
	m, err := DistanceMatrix(seqs, 3)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m[0][1])
	assert.Equal(t, 1.0, m[0][2])
	assert.Equal(t, m[2][0], m[0][2])
	for i := range m {
		assert.Equal(t, 0.0, m[i][i])
	}

	_, err = DistanceMatrix(nil, 3)
	assert.Error(t, err)
	_, err = DistanceMatrix([][]byte{[]byte("A")}, 3)
	assert.Error(t, err)
}

func BenchmarkCountKMers(b *testing.B) {
	seq := []byte(strings.Repeat("ATGC", 28))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = CountKMers(seq, 21)
	}
}

func BenchmarkJaccardDistance(b *testing.B) {
	seq1 := []byte(strings.Repeat("ATGC", 28))
	seq2 := []byte(strings.Repeat("GCTA", 28))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = JaccardDistance(seq1, seq2, 11)
	}
}
