package alignment

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/aria-lang/bioalign/internal/cigar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simple(t *testing.T, match, mismatch, gapOpen, gapExtend int) *ScoringMatrix {
	t.Helper()
	s, err := NewScoringMatrix(match, mismatch, gapOpen, gapExtend)
	require.NoError(t, err)
	return s
}

func TestScoringMatrix(t *testing.T) {
	t.Run("DefaultDNA", func(t *testing.T) {
		s := DefaultDNA()
		assert.Equal(t, 2, s.MatchScore)
		assert.Equal(t, -1, s.MismatchPenalty)
		assert.Equal(t, -5, s.GapOpenPenalty)
		assert.Equal(t, -2, s.GapExtendPenalty)
	})

	t.Run("BLASTLike", func(t *testing.T) {
		s := BLASTLike()
		assert.Equal(t, 1, s.MatchScore)
		assert.Equal(t, -3, s.MismatchPenalty)
	})

	t.Run("Pair match ignores case", func(t *testing.T) {
		s := DefaultDNA()
		assert.Equal(t, 2, s.Pair('A', 'A'))
		assert.Equal(t, 2, s.Pair('a', 'A'))
	})

	t.Run("Pair mismatch", func(t *testing.T) {
		s := DefaultDNA()
		assert.Equal(t, -1, s.Pair('A', 'T'))
	})

	t.Run("Invalid scoring matrix", func(t *testing.T) {
		tests := []struct {
			name  string
			args  [4]int
			field string
		}{
			{"zero match", [4]int{0, -1, -2, -1}, "match"},
			{"positive mismatch", [4]int{2, 1, -2, -1}, "mismatch"},
			{"positive gap open", [4]int{2, -1, 3, -1}, "gap_open"},
			{"positive gap extend", [4]int{2, -1, -2, 1}, "gap_extend"},
			{"huge match", [4]int{2_000_000, -1, -2, -1}, "match"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewScoringMatrix(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
				var cfg *ConfigError
				require.ErrorAs(t, err, &cfg)
				assert.Equal(t, tt.field, cfg.Field)
			})
		}
	})

	t.Run("gap open cheaper than extend is accepted", func(t *testing.T) {
		_, err := NewScoringMatrix(1, -1, -1, -3)
		assert.NoError(t, err)
	})
}

func TestSubstitutionMatrices(t *testing.T) {
	t.Run("presets by name", func(t *testing.T) {
		tests := []struct {
			name      string
			gapOpen   int
			gapExtend int
			ww        int
		}{
			{"blosum62", -11, -1, 11},
			{"blosum45", -15, -2, 15},
			{"blosum80", -10, -1, 11},
			{"pam250", -14, -2, 17},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m, err := NamedProteinScheme(tt.name)
				require.NoError(t, err)
				assert.Equal(t, tt.name, m.Name())
				assert.Equal(t, tt.gapOpen, m.GapOpen())
				assert.Equal(t, tt.gapExtend, m.GapExtend())
				assert.Equal(t, tt.ww, m.Pair('W', 'W'))
			})
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		for _, m := range Presets() {
			for i := 0; i < len(proteinAlphabet); i++ {
				for j := 0; j < len(proteinAlphabet); j++ {
					a, b := proteinAlphabet[i], proteinAlphabet[j]
					require.Equal(t, m.Pair(a, b), m.Pair(b, a), "%s %c/%c", m.Name(), a, b)
				}
			}
		}
	})

	t.Run("case and unknown residues", func(t *testing.T) {
		assert.Equal(t, BLOSUM62.Pair('W', 'W'), BLOSUM62.Pair('w', 'W'))
		assert.Equal(t, BLOSUM62.Pair('X', 'A'), BLOSUM62.Pair('J', 'A'))
		assert.Equal(t, -1, BLOSUM62.Pair('J', 'J'))
	})

	t.Run("unknown name lists valid names", func(t *testing.T) {
		_, err := NamedProteinScheme("BLOSUM62")
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, MatrixNames(), cfg.Valid)
		assert.Contains(t, err.Error(), "blosum62, blosum45, blosum80, pam250")
	})

	t.Run("WithGaps copies", func(t *testing.T) {
		m, err := BLOSUM62.WithGaps(-8, -2)
		require.NoError(t, err)
		assert.Equal(t, -8, m.GapOpen())
		assert.Equal(t, -11, BLOSUM62.GapOpen())

		_, err = BLOSUM62.WithGaps(3, -1)
		assert.Error(t, err)
	})
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"local", "global", "semiglobal"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	for _, bad := range []string{"Global", "semi-global", ""} {
		_, err := ParseMode(bad)
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg, bad)
		assert.Equal(t, []string{"local", "global", "semiglobal"}, cfg.Valid)
	}
}

func TestAlignFixtures(t *testing.T) {
	tests := []struct {
		name          string
		query, target string
		mode          Mode
		scheme        [4]int
		score         int
		alignedQuery  string
		alignedTarget string
		cigar         string
		spans         [4]int
	}{
		{
			name: "identical global", query: "ACGT", target: "ACGT", mode: Global,
			scheme: [4]int{1, -1, -2, -1}, score: 4,
			alignedQuery: "ACGT", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{0, 4, 0, 4},
		},
		{
			name: "textbook needleman-wunsch", query: "GATTACA", target: "GCATGCU", mode: Global,
			scheme: [4]int{1, -1, -1, -1}, score: 0,
			alignedQuery: "G-ATTACA", alignedTarget: "GCA-TGCU", cigar: "1M1D1M1I4M", spans: [4]int{0, 7, 0, 7},
		},
		{
			name: "costly gap open prefers mismatches", query: "GATTACA", target: "GCATGCU", mode: Global,
			scheme: [4]int{1, -1, -2, -1}, score: -1,
			alignedQuery: "GATTACA", alignedTarget: "GCATGCU", cigar: "7M", spans: [4]int{0, 7, 0, 7},
		},
		{
			name: "affine gap keeps one run", query: "ACGTTTTACGT", target: "ACGTACGT", mode: Global,
			scheme: [4]int{2, -1, -5, -2}, score: 7,
			alignedQuery: "ACGTTTTACGT", alignedTarget: "ACG---TACGT", cigar: "3M3I5M", spans: [4]int{0, 11, 0, 8},
		},
		{
			name: "cheaper gaps same path", query: "ACGTTTTACGT", target: "ACGTACGT", mode: Global,
			scheme: [4]int{2, -1, -3, -1}, score: 11,
			alignedQuery: "ACGTTTTACGT", alignedTarget: "ACG---TACGT", cigar: "3M3I5M", spans: [4]int{0, 11, 0, 8},
		},
		{
			name: "gap in query", query: "ACGTACGT", target: "ACGTTTACGT", mode: Global,
			scheme: [4]int{1, -1, -3, -1}, score: 4,
			alignedQuery: "ACG--TACGT", alignedTarget: "ACGTTTACGT", cigar: "3M2D5M", spans: [4]int{0, 8, 0, 10},
		},
		{
			name: "local core", query: "TTTACGTAAA", target: "GGACGTGG", mode: Local,
			scheme: [4]int{2, -1, -5, -2}, score: 8,
			alignedQuery: "ACGT", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{3, 7, 2, 6},
		},
		{
			name: "local with gap", query: "ACGTACGT", target: "ACGTTACGT", mode: Local,
			scheme: [4]int{2, -1, -2, -1}, score: 14,
			alignedQuery: "ACG-TACGT", alignedTarget: "ACGTTACGT", cigar: "3M1D5M", spans: [4]int{0, 8, 0, 9},
		},
		{
			name: "local prefix", query: "ATGCATGC", target: "ATGCGGGG", mode: Local,
			scheme: [4]int{2, -1, -5, -2}, score: 8,
			alignedQuery: "ATGC", alignedTarget: "ATGC", cigar: "4M", spans: [4]int{0, 4, 0, 4},
		},
		{
			name: "local textbook pair", query: "GATTACA", target: "GCATGCU", mode: Local,
			scheme: [4]int{1, -1, -1, -1}, score: 2,
			alignedQuery: "AT", alignedTarget: "AT", cigar: "2M", spans: [4]int{1, 3, 2, 4},
		},
		{
			name: "semiglobal contained query", query: "ACGT", target: "TTACGTAA", mode: SemiGlobal,
			scheme: [4]int{2, -1, -5, -2}, score: 8,
			alignedQuery: "ACGT", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{0, 4, 2, 6},
		},
		{
			name: "semiglobal contained target", query: "TTACGTAA", target: "ACGT", mode: SemiGlobal,
			scheme: [4]int{2, -1, -5, -2}, score: 8,
			alignedQuery: "ACGT", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{2, 6, 0, 4},
		},
		{
			name: "semiglobal overlap", query: "ACGTTTTACGT", target: "ACGTACGT", mode: SemiGlobal,
			scheme: [4]int{2, -1, -5, -2}, score: 8,
			alignedQuery: "ACGT", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{7, 11, 0, 4},
		},
		{
			name: "lower case query", query: "acgt", target: "ACGT", mode: Global,
			scheme: [4]int{1, -1, -2, -1}, score: 4,
			alignedQuery: "acgt", alignedTarget: "ACGT", cigar: "4M", spans: [4]int{0, 4, 0, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := simple(t, tt.scheme[0], tt.scheme[1], tt.scheme[2], tt.scheme[3])
			aln, err := Align(context.Background(), []byte(tt.query), []byte(tt.target), tt.mode, s)
			require.NoError(t, err)

			assert.Equal(t, tt.score, aln.Score)
			assert.Equal(t, tt.alignedQuery, string(aln.AlignedQuery))
			assert.Equal(t, tt.alignedTarget, string(aln.AlignedTarget))
			assert.Equal(t, tt.cigar, aln.CIGAR)
			assert.Equal(t, tt.spans, [4]int{aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd})
			assertConsistent(t, aln, []byte(tt.query), []byte(tt.target))
		})
	}
}

func assertConsistent(t *testing.T, aln *Alignment, query, target []byte) {
	t.Helper()
	assert.Len(t, aln.AlignedQuery, aln.Length)
	assert.Len(t, aln.AlignedTarget, aln.Length)
	assert.Equal(t, aln.Length, aln.Matches+aln.Mismatches+aln.Gaps)

	c, err := cigar.Parse(aln.CIGAR)
	require.NoError(t, err)
	aq, at, err := c.Apply(query[aln.QueryStart:aln.QueryEnd], target[aln.TargetStart:aln.TargetEnd])
	require.NoError(t, err)
	assert.Equal(t, string(aln.AlignedQuery), string(aq))
	assert.Equal(t, string(aln.AlignedTarget), string(at))
}

func TestAlignCounts(t *testing.T) {
	aln, err := Align(context.Background(), []byte("GATTACA"), []byte("GCATGCU"), Global, simple(t, 1, -1, -1, -1))
	require.NoError(t, err)

	assert.Equal(t, 4, aln.Matches)
	assert.Equal(t, 2, aln.Mismatches)
	assert.Equal(t, 2, aln.Gaps)
	assert.Equal(t, 8, aln.Length)
	assert.InDelta(t, 0.5, aln.Identity, 1e-9)
	assert.Equal(t, 2, aln.GapOpenings())
	assert.Equal(t, "1=1D1=1I1=1X1=1X", aln.ExtendedCIGAR())
	assert.Equal(t, "| | |.|.", aln.MatchLine())
}

func TestAlignCaseInsensitiveMatches(t *testing.T) {
	aln, err := Align(context.Background(), []byte("acgt"), []byte("ACGT"), Global, simple(t, 1, -1, -2, -1))
	require.NoError(t, err)

	assert.Equal(t, 4, aln.Matches)
	assert.Equal(t, 1.0, aln.Identity)
}

func TestSelfAlignment(t *testing.T) {
	seqs := []string{"A", "ACGT", "GATTACAGATTACA", "TTTTTTTTTT", "ACGTNNNNacgt"}
	s := simple(t, 1, -1, -2, -1)

	for _, seq := range seqs {
		t.Run(seq, func(t *testing.T) {
			for _, mode := range []Mode{Global, Local, SemiGlobal} {
				aln, err := Align(context.Background(), []byte(seq), []byte(seq), mode, s)
				require.NoError(t, err)

				assert.Equal(t, 1.0, aln.Identity, mode.String())
				assert.Equal(t, 0, aln.Mismatches)
				assert.Equal(t, 0, aln.Gaps)
				assert.Equal(t, len(seq), aln.Score)
				assert.Equal(t, [4]int{0, len(seq), 0, len(seq)}, [4]int{aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd})
				assert.Equal(t, strconv.Itoa(len(seq))+"M", aln.CIGAR)
			}
		})
	}
}

func TestLocalNoPositiveCell(t *testing.T) {
	aln, err := Align(context.Background(), []byte("AAAA"), []byte("TTTT"), Local, DefaultDNA())
	require.NoError(t, err)

	assert.Equal(t, 0, aln.Score)
	assert.Equal(t, 0, aln.Length)
	assert.Empty(t, aln.CIGAR)
	assert.Equal(t, 0.0, aln.Identity)
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd})
}

func TestLocalScoreNonNegative(t *testing.T) {
	pairs := [][2]string{{"AAAA", "TTTT"}, {"ACGT", "TGCA"}, {"G", "C"}, {"ACACAC", "GTGTGT"}}
	for _, p := range pairs {
		aln, err := Align(context.Background(), []byte(p[0]), []byte(p[1]), Local, BLASTLike())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, aln.Score, 0)
	}
}

func TestGlobalCanBeNegative(t *testing.T) {
	aln, err := Align(context.Background(), []byte("AAAA"), []byte("TT"), Global, DefaultDNA())
	require.NoError(t, err)
	assert.Less(t, aln.Score, 0)
	assert.Equal(t, [4]int{0, 4, 0, 2}, [4]int{aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd})
}

func TestProteinAlignment(t *testing.T) {
	tests := []struct {
		name          string
		query, target string
		mode          Mode
		matrix        string
		score         int
		cigar         string
		spans         [4]int
	}{
		{"self blosum62", "HEAGAWGHEE", "HEAGAWGHEE", Global, "blosum62", 62, "10M", [4]int{0, 10, 0, 10}},
		{"local blosum62", "HEAGAWGHEE", "PAWHEAE", Local, "blosum62", 17, "3M", [4]int{0, 3, 3, 6}},
		{"global blosum62", "HEAGAWGHEE", "PAWHEAE", Global, "blosum62", 2, "3I7M", [4]int{0, 10, 0, 7}},
		{"self pam250", "MKTAYIAKQR", "MKTAYIAKQR", Local, "pam250", 48, "10M", [4]int{0, 10, 0, 10}},
		{"mixed case blosum45", "MKTAYIAKQR", "mktayiakqr", Global, "blosum45", 57, "10M", [4]int{0, 10, 0, 10}},
		{"self blosum80", "MKTAYIAKQRQISFVKSHFSRQ", "MKTAYIAKQRQISFVKSHFSRQ", Global, "blosum80", 122, "22M", [4]int{0, 22, 0, 22}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NamedProteinScheme(tt.matrix)
			require.NoError(t, err)

			aln, err := Align(context.Background(), []byte(tt.query), []byte(tt.target), tt.mode, m)
			require.NoError(t, err)

			assert.Equal(t, tt.score, aln.Score)
			assert.Equal(t, tt.cigar, aln.CIGAR)
			assert.Equal(t, tt.spans, [4]int{aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd})
			assertConsistent(t, aln, []byte(tt.query), []byte(tt.target))
		})
	}
}

func TestBandedAlignment(t *testing.T) {
	q, tg := []byte("AAAAAGGGGG"), []byte("AAAAATTGGGGG")

	full, err := Align(context.Background(), q, tg, Global, DefaultDNA())
	require.NoError(t, err)

	a, err := New(Global, DefaultDNA())
	require.NoError(t, err)
	a.Band = 2
	banded, err := a.Align(context.Background(), q, tg)
	require.NoError(t, err)

	assert.Equal(t, 13, full.Score)
	assert.Equal(t, "5M2D5M", full.CIGAR)
	assert.Equal(t, full.Score, banded.Score)
	assert.Equal(t, full.CIGAR, banded.CIGAR)

	t.Run("band narrower than length difference is widened", func(t *testing.T) {
		a.Band = 1
		aln, err := a.Align(context.Background(), q, tg)
		require.NoError(t, err)
		assert.Equal(t, 13, aln.Score)
	})

	t.Run("negative band rejected", func(t *testing.T) {
		a.Band = -1
		_, err := a.Align(context.Background(), q, tg)
		var cfg *ConfigError
		assert.ErrorAs(t, err, &cfg)
	})
}

func TestScoreOnlyMatchesAlign(t *testing.T) {
	pairs := [][2]string{
		{"GATTACA", "GCATGCU"},
		{"ACGTTTTACGT", "ACGTACGT"},
		{"TTTACGTAAA", "GGACGTGG"},
		{"ACGT", "TTACGTAA"},
	}
	for _, mode := range []Mode{Local, Global, SemiGlobal} {
		a, err := New(mode, DefaultDNA())
		require.NoError(t, err)
		for _, p := range pairs {
			aln, err := a.Align(context.Background(), []byte(p[0]), []byte(p[1]))
			require.NoError(t, err)
			score, err := a.Score(context.Background(), []byte(p[0]), []byte(p[1]))
			require.NoError(t, err)
			assert.Equal(t, aln.Score, score, "%s %v", mode, p)
		}
	}
}

func TestAlignErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		_, err := Align(ctx, nil, []byte("ACGT"), Global, DefaultDNA())
		var in *InputError
		require.ErrorAs(t, err, &in)
		assert.Equal(t, "query", in.Arg)
	})

	t.Run("empty target", func(t *testing.T) {
		_, err := Align(ctx, []byte("ACGT"), []byte{}, Local, DefaultDNA())
		var in *InputError
		require.ErrorAs(t, err, &in)
		assert.Equal(t, "target", in.Arg)
	})

	t.Run("invalid scheme is reported before input", func(t *testing.T) {
		_, err := Align(ctx, nil, nil, Global, &ScoringMatrix{MatchScore: -1})
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
	})

	t.Run("nil scheme", func(t *testing.T) {
		_, err := New(Global, nil)
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := New(Mode(9), DefaultDNA())
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
	})

	t.Run("resource ceiling", func(t *testing.T) {
		a, err := New(Global, DefaultDNA())
		require.NoError(t, err)
		a.MaxCells = 15
		_, err = a.Align(ctx, []byte("ACGT"), []byte("ACGT"))
		var res *ResourceError
		require.ErrorAs(t, err, &res)
		assert.Equal(t, int64(16), res.Cells)
		assert.Equal(t, int64(15), res.Limit)

		var ae Error
		assert.True(t, errors.As(err, &ae))
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Align(cctx, []byte("ACGT"), []byte("ACGT"), Global, DefaultDNA())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAlignBatch(t *testing.T) {
	ctx := context.Background()
	pairs := []Pair{
		{Query: []byte("GATTACA"), Target: []byte("GCATGCU")},
		{Query: []byte("ACGTTTTACGT"), Target: []byte("ACGTACGT")},
		{Query: []byte("TTTACGTAAA"), Target: []byte("GGACGTGG")},
	}
	s := simple(t, 1, -1, -1, -1)

	a, err := New(Global, s)
	require.NoError(t, err)
	a.Workers = 2

	results, err := a.AlignBatch(ctx, pairs)
	require.NoError(t, err)
	require.Len(t, results, len(pairs))

	for i, p := range pairs {
		single, err := a.Align(ctx, p.Query, p.Target)
		require.NoError(t, err)
		assert.Equal(t, single, results[i])
	}

	t.Run("empty pair fails whole batch", func(t *testing.T) {
		bad := append([]Pair{}, pairs...)
		bad = append(bad, Pair{Query: []byte("ACGT")})
		results, err := a.AlignBatch(ctx, bad)
		assert.Nil(t, results)
		var in *InputError
		require.ErrorAs(t, err, &in)
		assert.Equal(t, "pairs[3].target", in.Arg)
	})

	t.Run("invalid mode fails before pairs", func(t *testing.T) {
		_, err := AlignBatch(ctx, []Pair{{}}, Mode(-1), s)
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
	})

	t.Run("empty batch", func(t *testing.T) {
		results, err := a.AlignBatch(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestFindBestAlignment(t *testing.T) {
	a, err := New(Local, DefaultDNA())
	require.NoError(t, err)

	targets := [][]byte{[]byte("TTTT"), []byte("GGACGTGG"), []byte("ACGTACGT")}
	best, err := a.FindBestAlignment(context.Background(), []byte("ACGTACGT"), targets)
	require.NoError(t, err)
	assert.Equal(t, 2, best.Index)
	assert.Equal(t, 16, best.Alignment.Score)

	_, err = a.FindBestAlignment(context.Background(), []byte("ACGT"), nil)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	aln, err := Align(context.Background(), []byte("TTTACGTAAA"), []byte("GGACGTGG"), Local, DefaultDNA())
	require.NoError(t, err)

	out := aln.Format(60)
	assert.Contains(t, out, "Qry      4 ACGT 7")
	assert.Contains(t, out, "Tgt      3 ACGT 6")
	assert.Contains(t, out, "CIGAR: 4M")
	assert.Contains(t, aln.String(), "mode: local")
}

func TestAlignmentJSON(t *testing.T) {
	aln, err := Align(context.Background(), []byte("TTTACGTAAA"), []byte("GGACGTGG"), Local, DefaultDNA())
	require.NoError(t, err)

	data, err := json.Marshal(aln)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ACGT", got["aligned_query"])
	assert.Equal(t, "ACGT", got["aligned_target"])
	assert.Equal(t, "local", got["mode"])
	assert.Equal(t, "4M", got["cigar"])
	assert.Equal(t, "4=", got["extended_cigar"])
	assert.Equal(t, 8.0, got["score"])
	assert.Equal(t, 3.0, got["query_start"])
}

func TestPercentIdentity(t *testing.T) {
	pct, err := PercentIdentity([]byte("AC-T"), []byte("ACGT"))
	require.NoError(t, err)
	assert.InDelta(t, 75.0, pct, 1e-9)

	_, err = PercentIdentity([]byte("A"), []byte("AC"))
	assert.Error(t, err)
	_, err = PercentIdentity(nil, nil)
	assert.Error(t, err)
}

func BenchmarkAlignLocal(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	a, _ := New(Local, DefaultDNA())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Align(ctx, []byte(s1), []byte(s2))
	}
}

func BenchmarkAlignGlobal(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	a, _ := New(Global, DefaultDNA())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Align(ctx, []byte(s1), []byte(s2))
	}
}

func BenchmarkAlignmentScoreOnly(b *testing.B) {
	s1 := strings.Repeat("ACGT", 250)
	s2 := strings.Repeat("AGCT", 250)
	a, _ := New(Local, DefaultDNA())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Score(ctx, []byte(s1), []byte(s2))
	}
}
