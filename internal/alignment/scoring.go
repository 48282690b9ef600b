// Package alignment provides exact pairwise sequence alignment.
//
// Alignments use Gotoh's affine-gap recurrence in local (Smith-Waterman),
// global (Needleman-Wunsch) and semi-global modes. Scoring is either a
// simple match/mismatch scheme or a named protein substitution matrix.
package alignment

import (
	"fmt"
	"strconv"
)

// maxParam bounds the magnitude of simple-scheme parameters so that
// cumulative DP scores cannot overflow.
const maxParam = 1_000_000

// Scheme scores residue pairs and gaps. Implementations must be safe for
// concurrent read-only use.
type Scheme interface {
	// Pair returns the substitution score of a against b.
	Pair(a, b byte) int
	// GapOpen is the cost of the first position of a gap run.
	GapOpen() int
	// GapExtend is the cost of every further position of a gap run.
	GapExtend() int
	Name() string
	Validate() error
}

// ScoringMatrix is the simple scoring scheme. Residues are compared
// case-insensitively.
type ScoringMatrix struct {
	MatchScore       int
	MismatchPenalty  int
	GapOpenPenalty   int
	GapExtendPenalty int
}

// NewScoringMatrix creates a new scoring matrix with validation.
func NewScoringMatrix(match, mismatch, gapOpen, gapExtend int) (*ScoringMatrix, error) {
	s := &ScoringMatrix{
		MatchScore:       match,
		MismatchPenalty:  mismatch,
		GapOpenPenalty:   gapOpen,
		GapExtendPenalty: gapExtend,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultDNA creates the default nucleotide scheme (+2/-1, gaps -5/-2).
func DefaultDNA() *ScoringMatrix {
	return &ScoringMatrix{
		MatchScore:       2,
		MismatchPenalty:  -1,
		GapOpenPenalty:   -5,
		GapExtendPenalty: -2,
	}
}

// BLASTLike creates a BLAST-like scoring matrix.
func BLASTLike() *ScoringMatrix {
	return &ScoringMatrix{
		MatchScore:       1,
		MismatchPenalty:  -3,
		GapOpenPenalty:   -5,
		GapExtendPenalty: -2,
	}
}

// Validate checks the structural sanity of the parameters.
func (s *ScoringMatrix) Validate() error {
	check := func(field string, v int, ok bool, reason string) error {
		if !ok {
			return &ConfigError{Field: field, Value: strconv.Itoa(v), Reason: reason}
		}
		if v > maxParam || v < -maxParam {
			return &ConfigError{Field: field, Value: strconv.Itoa(v), Reason: fmt.Sprintf("magnitude exceeds %d", maxParam)}
		}
		return nil
	}
	if err := check("match", s.MatchScore, s.MatchScore > 0, "match score must be positive"); err != nil {
		return err
	}
	if err := check("mismatch", s.MismatchPenalty, s.MismatchPenalty <= 0, "mismatch penalty should be <= 0"); err != nil {
		return err
	}
	if err := check("gap_open", s.GapOpenPenalty, s.GapOpenPenalty <= 0, "gap open penalty should be <= 0"); err != nil {
		return err
	}
	return check("gap_extend", s.GapExtendPenalty, s.GapExtendPenalty <= 0, "gap extend penalty should be <= 0")
}

// Pair returns the match score for equal residues and the mismatch penalty
// otherwise.
func (s *ScoringMatrix) Pair(a, b byte) int {
	if upper(a) == upper(b) {
		return s.MatchScore
	}
	return s.MismatchPenalty
}

func (s *ScoringMatrix) GapOpen() int { return s.GapOpenPenalty }
func (s *ScoringMatrix) GapExtend() int { return s.GapExtendPenalty }

func (s *ScoringMatrix) Name() string {
	return fmt.Sprintf("simple(%d,%d,%d,%d)", s.MatchScore, s.MismatchPenalty, s.GapOpenPenalty, s.GapExtendPenalty)
}

// String returns a string representation of the scoring matrix.
func (s *ScoringMatrix) String() string {
	return fmt.Sprintf("ScoringMatrix { match: %d, mismatch: %d, gap_open: %d, gap_extend: %d }",
		s.MatchScore, s.MismatchPenalty, s.GapOpenPenalty, s.GapExtendPenalty)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Upper returns an upper-cased copy of seq. Only ASCII letters change.
func Upper(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[i] = upper(c)
	}
	return out
}

// EqualFold reports whether two residues are equal under the scoring case
// policy.
func EqualFold(a, b byte) bool {
	return upper(a) == upper(b)
}
