package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/cigar"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAlignCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "plain text",
			args:     []string{"align", "--no-color", "TTTACGTAAA", "GGACGTGG"},
			contains: []string{"Qry      4 ACGT 7", "Tgt      3 ACGT 6", "Score: 8", "CIGAR: 4M"},
		},
		{
			name:     "global affine gap",
			args:     []string{"align", "--no-color", "--mode", "global", "ACGTTTTACGT", "ACGTACGT"},
			contains: []string{"ACG---TACGT", "CIGAR: 3M3I5M"},
		},
		{
			name:     "score only",
			args:     []string{"align", "--score-only", "TTTACGTAAA", "GGACGTGG"},
			contains: []string{"8\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestAlignJSON(t *testing.T) {
	out, _, err := run(t, "align", "--json", "TTTACGTAAA", "GGACGTGG")
	require.NoError(t, err)

	var got struct {
		Score        int    `json:"score"`
		AlignedQuery string `json:"aligned_query"`
		QueryStart   int    `json:"query_start"`
		Cigar        string `json:"cigar"`
		Mode         string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8, got.Score)
	assert.Equal(t, "ACGT", got.AlignedQuery)
	assert.Equal(t, 3, got.QueryStart)
	assert.Equal(t, "4M", got.Cigar)
	assert.Equal(t, "local", got.Mode)
}

func TestAlignFASTA(t *testing.T) {
	path := writeTemp(t, "pair.fa", ">q\nACGTTTT\nACGT\n>t\nACGTACGT\n")
	out, _, err := run(t, "align", "--no-color", "--mode", "global", "--fasta", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CIGAR: 3M3I5M")
}

func TestAlignErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"one argument", []string{"align", "ACGT"}},
		{"bad mode", []string{"align", "--mode", "Global", "ACGT", "ACGT"}},
		{"bad matrix", []string{"align", "--matrix", "blosum99", "ACGT", "ACGT"}},
		{"positive gap", []string{"align", "--gap-open", "3", "ACGT", "ACGT"}},
		{"fasta with args", []string{"align", "--fasta", "x.fa", "ACGT", "ACGT"}},
		{"missing config", []string{"--config", "/nonexistent/bioalign.yaml", "align", "ACGT", "ACGT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}

	t.Run("config error type", func(t *testing.T) {
		_, _, err := run(t, "align", "--matrix", "blosum99", "ACGT", "ACGT")
		var cfgErr *alignment.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "matrix", cfgErr.Field)
	})
}

func TestBatchCommand(t *testing.T) {
	path := writeTemp(t, "pairs.tsv", "# pairs\nTTTACGTAAA\tGGACGTGG\n\nsecond\tACGTTTTACGT\tACGTACGT\n")

	out, _, err := run(t, "batch", "--mode", "global", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id\tscore"))
	assert.True(t, strings.HasPrefix(lines[1], "1\t"))
	assert.True(t, strings.HasPrefix(lines[2], "second\t"))
	assert.True(t, strings.HasSuffix(lines[2], "\t3M3I5M"))

	out, _, err = run(t, "batch", "--json", "--workers", "2", path)
	require.NoError(t, err)
	var records []struct {
		ID        string `json:"id"`
		Alignment struct {
			Score int    `json:"score"`
			Cigar string `json:"cigar"`
		} `json:"alignment"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, 8, records[0].Alignment.Score)
	assert.Equal(t, "4M", records[0].Alignment.Cigar)
}

func TestBatchErrors(t *testing.T) {
	t.Run("malformed line", func(t *testing.T) {
		path := writeTemp(t, "bad.tsv", "ACGT\n")
		_, _, err := run(t, "batch", path)
		assert.ErrorContains(t, err, "expected 2 or 3 tab-separated fields")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTemp(t, "empty.tsv", "# nothing\n")
		_, _, err := run(t, "batch", path)
		assert.ErrorContains(t, err, "no pairs")
	})

	t.Run("pair limit", func(t *testing.T) {
		cfg := writeTemp(t, "bioalign.yaml", "limits:\n  max_batch_pairs: 1\n")
		path := writeTemp(t, "pairs.tsv", "ACGT\tACGT\nACGT\tACGA\n")
		_, _, err := run(t, "--config", cfg, "batch", path)
		var inErr *alignment.InputError
		require.ErrorAs(t, err, &inErr)
		assert.Equal(t, "pairs", inErr.Arg)
	})

	t.Run("empty sequence", func(t *testing.T) {
		path := writeTemp(t, "pairs.tsv", "ACGT\t\n")
		_, _, err := run(t, "batch", path)
		var inErr *alignment.InputError
		assert.ErrorAs(t, err, &inErr)
	})
}

func TestMSACommand(t *testing.T) {
	path := writeTemp(t, "seqs.fa", ">a first\nACGT\n>b\nACGA\n>c\nACGG\n")
	tree := filepath.Join(t.TempDir(), "guide.nwk")

	out, stderr, err := run(t, "msa", "--tree", tree, path)
	require.NoError(t, err)
	assert.Equal(t, ">a first\nACGT\n>b\nACGA\n>c\nACGG\n", out)
	assert.Contains(t, stderr, "aligned 3 sequences")

	newick, err := os.ReadFile(tree)
	require.NoError(t, err)
	assert.Equal(t, "(c:0.125,(a:0.125,b:0.125):0);\n", string(newick))
}

func TestMSAJSON(t *testing.T) {
	path := writeTemp(t, "seqs.fa", ">s1\nGATTACA\n>s2\nGATTTACA\n>s3\nGACA\n>s4\nGATTACCA\n")
	out, _, err := run(t, "msa", "--json", "--scheme", "nucleotide", path)
	require.NoError(t, err)

	var got struct {
		Aligned      []string `json:"aligned"`
		Conservation float64  `json:"conservation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"GA-TTACA", "GATTTACA", "GA----CA", "GATTACCA"}, got.Aligned)
	assert.InDelta(t, 0.78125, got.Conservation, 1e-9)
}

func TestMSAErrors(t *testing.T) {
	single := writeTemp(t, "one.fa", ">a\nACGT\n")
	_, _, err := run(t, "msa", single)
	var inErr *alignment.InputError
	require.ErrorAs(t, err, &inErr)

	pair := writeTemp(t, "two.fa", ">a\nACGT\n>b\nACGA\n")
	_, _, err = run(t, "msa", "--scheme", "rna", pair)
	var cfgErr *alignment.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "scheme", cfgErr.Field)

	_, _, err = run(t, "msa", "--distance", "hamming", pair)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMatricesCommand(t *testing.T) {
	out, _, err := run(t, "matrices", "--no-color")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+len(alignment.MatrixNames()))
	assert.Equal(t, "NAME      GAP_OPEN  GAP_EXTEND", lines[0])
	assert.Equal(t, "blosum62  -11       -1", lines[1])

	out, _, err = run(t, "matrices", "--show", "blosum62")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# blosum62 gap_open=-11 gap_extend=-1\n"))
	assert.Contains(t, out, "\nW  -3  -3  -4  -4  -2  -2  -3  -2  -2  -3  -2  -3  -1   1  -4  -3  -2  11")

	_, _, err = run(t, "matrices", "--show", "BLOSUM62")
	assert.Error(t, err)
}

func TestCigarCommands(t *testing.T) {
	out, _, err := run(t, "cigar", "stats", "--json", "3S10M2I5M1D4M")
	require.NoError(t, err)
	var stats cigar.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.Insertions)
	assert.Equal(t, 1, stats.Deletions)
	assert.Equal(t, 3, stats.SoftClipped)
	assert.Equal(t, 24, stats.QueryLength)
	assert.Equal(t, 20, stats.ReferenceLength)

	out, _, err = run(t, "cigar", "stats", "4M")
	require.NoError(t, err)
	assert.Contains(t, out, "aligned columns:  4")

	out, _, err = run(t, "cigar", "decode", "3M1I2M", "ACGTAC", "ACGAC")
	require.NoError(t, err)
	assert.Equal(t, "ACGTAC\nACG-AC\n", out)

	out, _, err = run(t, "cigar", "encode", "--extended", "ACGTAC", "ACG-AT")
	require.NoError(t, err)
	assert.Equal(t, "3=1I1=1X\n", out)

	out, _, err = run(t, "cigar", "md", "2M2D2M", "ACTA", "ACGGTA")
	require.NoError(t, err)
	assert.Equal(t, "2^GG2\n", out)

	_, _, err = run(t, "cigar", "stats", "10Q")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := run(t, "-v", "align", "--score-only", "ACGT", "ACGT")
	require.NoError(t, err)
	assert.Contains(t, stderr, "aligning")

	_, stderr, err = run(t, "align", "--score-only", "ACGT", "ACGT")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "aligning")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, log.Default(), LoggerFromContext(context.Background()))

	var buf bytes.Buffer
	l := NewLogger(&buf, log.InfoLevel)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, LoggerFromContext(ctx))

	newProgress(l).done("finished", "items", 3)
	assert.Contains(t, buf.String(), "finished")
	assert.Contains(t, buf.String(), "items=3")
}
