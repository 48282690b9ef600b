package cigar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	ops := []Op{Match, Match, Deletion, Match, Insertion, Match, Match, Match, Match}
	assert.Equal(t, "2M1D1M1I4M", Encode(ops).String())
	assert.Equal(t, "", Encode(nil).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cigar
		wantErr bool
	}{
		{name: "simple", input: "10M", want: Cigar{{10, Match}}},
		{name: "mixed", input: "3S5M2I1D4M", want: Cigar{{3, SoftClip}, {5, Match}, {2, Insertion}, {1, Deletion}, {4, Match}}},
		{name: "extended", input: "2=1X", want: Cigar{{2, Equal}, {1, Diff}}},
		{name: "star", input: "*", want: Cigar{}},
		{name: "empty", input: "", want: Cigar{}},
		{name: "missing length", input: "M", wantErr: true},
		{name: "unknown op", input: "5Q", wantErr: true},
		{name: "zero length", input: "0M", wantErr: true},
		{name: "trailing digits", input: "5M3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"5H3S10M2S", true},
		{"10M5H", true},
		{"3M2H3M", false},
		{"3M2S3M", false},
		{"2H3S", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)
			if tt.valid {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}

	assert.Error(t, Cigar{{0, Match}}.Validate())
	assert.Error(t, Cigar{{1, Op('Q')}}.Validate())
}

func TestTransforms(t *testing.T) {
	t.Run("merge", func(t *testing.T) {
		c := Cigar{{2, Match}, {3, Match}, {0, Insertion}, {1, Deletion}}
		assert.Equal(t, "5M1D", c.Merge().String())
	})

	t.Run("collapse", func(t *testing.T) {
		c, _ := Parse("3=1X2=1I")
		assert.Equal(t, "6M1I", c.Collapse().String())
	})

	t.Run("reverse", func(t *testing.T) {
		c, _ := Parse("2S3M1I4M")
		assert.Equal(t, "4M1I3M2S", c.Reverse().String())
	})

	t.Run("hard clip to soft", func(t *testing.T) {
		c, _ := Parse("5H10M3H")
		assert.Equal(t, "5S10M3S", c.HardClipToSoft().String())

		c, _ = Parse("2H3S4M")
		assert.Equal(t, "5S4M", c.HardClipToSoft().String())
	})
}

func TestSplit(t *testing.T) {
	c, _ := Parse("2S4M2D3M1I2M")

	left, right, err := c.Split(5)
	require.NoError(t, err)
	assert.Equal(t, "2S4M1D", left.String())
	assert.Equal(t, "1D3M1I2M", right.String())
	assert.Equal(t, 5, left.ReferenceLength())
	assert.Equal(t, c.ReferenceLength(), left.ReferenceLength()+right.ReferenceLength())

	left, right, err = c.Split(0)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Equal(t, c.String(), right.String())

	_, _, err = c.Split(100)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	c, _ := Parse("2H3S4=1X2I3D5M1N")
	s := c.Stats()

	assert.Equal(t, 8, s.Operations)
	assert.Equal(t, 10, s.AlignedColumns)
	assert.Equal(t, 4, s.Matches)
	assert.Equal(t, 1, s.Mismatches)
	assert.Equal(t, 2, s.Insertions)
	assert.Equal(t, 3, s.Deletions)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 3, s.SoftClipped)
	assert.Equal(t, 2, s.HardClipped)
	assert.Equal(t, 15, s.Columns)
	assert.Equal(t, 15, s.QueryLength)
	assert.Equal(t, 14, s.ReferenceLength)
}

func TestFromRows(t *testing.T) {
	tests := []struct {
		query, target string
		extended      bool
		want          string
	}{
		{"G-ATTACA", "GCA-TGCU", false, "1M1D1M1I4M"},
		{"G-ATTACA", "GCA-TGCU", true, "1=1D1=1I1=1X1=1X"},
		{"acgt", "ACGT", true, "4="},
		{"ACG---TACGT", "ACGTTTTACGT", false, "3M3D5M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, err := FromRows([]byte(tt.query), []byte(tt.target), tt.extended)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}

	_, err := FromRows([]byte("A-"), []byte("A-"), false)
	assert.Error(t, err)
	_, err = FromRows([]byte("AC"), []byte("A"), false)
	assert.Error(t, err)
}

func TestApplyRoundTrip(t *testing.T) {
	rows := [][2]string{
		{"G-ATTACA", "GCA-TGCU"},
		{"ACGTTTTACGT", "ACG---TACGT"},
		{"ACG--TACGT", "ACGTTTACGT"},
	}

	for _, r := range rows {
		c, err := FromRows([]byte(r[0]), []byte(r[1]), false)
		require.NoError(t, err)

		q := ungap(r[0])
		tg := ungap(r[1])
		aq, at, err := c.Apply([]byte(q), []byte(tg))
		require.NoError(t, err)
		assert.Equal(t, r[0], string(aq))
		assert.Equal(t, r[1], string(at))
	}

	t.Run("soft clip consumes query", func(t *testing.T) {
		c, _ := Parse("2S3M")
		aq, at, err := c.Apply([]byte("TTACG"), []byte("ACG"))
		require.NoError(t, err)
		assert.Equal(t, "ACG", string(aq))
		assert.Equal(t, "ACG", string(at))
	})

	t.Run("length mismatch", func(t *testing.T) {
		c, _ := Parse("4M")
		_, _, err := c.Apply([]byte("ACG"), []byte("ACGT"))
		assert.Error(t, err)
	})
}

func ungap(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != Gap {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func TestMDTag(t *testing.T) {
	tests := []struct {
		name      string
		cigar     string
		query     string
		reference string
		want      string
	}{
		{"all match", "5M", "ACGTA", "ACGTA", "5"},
		{"one mismatch", "5M", "ACTTA", "ACGTA", "2G2"},
		{"adjacent mismatches", "4M", "AAAA", "ACGA", "1C0G1"},
		{"deletion", "2M2D2M", "ACTA", "ACGGTA", "2^GG2"},
		{"insertion ignored", "2M2I2M", "ACTTGT", "ACGT", "4"},
		{"soft clip skipped", "2S3M", "NNACG", "ACG", "3"},
		{"mismatch at start", "3M", "TCG", "ACG", "0A2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.cigar)
			require.NoError(t, err)
			md, err := c.MDTag([]byte(tt.query), []byte(tt.reference))
			require.NoError(t, err)
			assert.Equal(t, tt.want, md)
		})
	}

	c, _ := Parse("5M")
	_, err := c.MDTag([]byte("ACG"), []byte("ACGTA"))
	assert.Error(t, err)
}
