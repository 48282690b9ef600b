// Package bioalign provides a high-level API for pairwise and multiple
// sequence alignment.
//
// This package exposes the alignment core through a small set of functions
// and re-exported types for common operations.
//
// Example usage:
//
//	aln, err := bioalign.Align(ctx, []byte("TTTACGTAAA"), []byte("GGACGTGG"), bioalign.Local, bioalign.DefaultDNA())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(aln.Format(60))
//
//	res, err := bioalign.ProgressiveMSA(ctx, seqs, "nucleotide")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Newick)
package bioalign

import (
	"context"
	"io"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/cigar"
	"github.com/aria-lang/bioalign/internal/msa"
	"github.com/aria-lang/bioalign/internal/sequence"
)

// Re-export types for convenience
type (
	Mode               = alignment.Mode
	Scheme             = alignment.Scheme
	ScoringMatrix      = alignment.ScoringMatrix
	SubstitutionMatrix = alignment.SubstitutionMatrix
	Aligner            = alignment.Aligner
	Alignment          = alignment.Alignment
	Pair               = alignment.Pair
	IndexedAlignment   = alignment.IndexedAlignment
	ConfigError        = alignment.ConfigError
	InputError         = alignment.InputError
	ResourceError      = alignment.ResourceError
	Cigar              = cigar.Cigar
	CigarStats         = cigar.Stats
	MSAOptions         = msa.Options
	MSAResult          = msa.Result
	GuideTree          = msa.GuideTree
	Distance           = msa.Distance
	Sequence           = sequence.Sequence
)

// Alignment modes
const (
	Local      = alignment.Local
	Global     = alignment.Global
	SemiGlobal = alignment.SemiGlobal
)

// Guide tree distances
const (
	DistanceIdentity = msa.DistanceIdentity
	DistanceKmer     = msa.DistanceKmer
)

// Built-in protein matrices
var (
	BLOSUM62 = alignment.BLOSUM62
	BLOSUM45 = alignment.BLOSUM45
	BLOSUM80 = alignment.BLOSUM80
	PAM250   = alignment.PAM250
)

// NewAligner creates a validated aligner.
func NewAligner(mode Mode, scheme Scheme) (*Aligner, error) {
	return alignment.New(mode, scheme)
}

// ParseMode parses "local", "global" or "semiglobal".
func ParseMode(s string) (Mode, error) {
	return alignment.ParseMode(s)
}

// DefaultDNA returns the default nucleotide scheme.
func DefaultDNA() *ScoringMatrix {
	return alignment.DefaultDNA()
}

// NewScoringMatrix creates a simple match/mismatch scheme.
func NewScoringMatrix(match, mismatch, gapOpen, gapExtend int) (*ScoringMatrix, error) {
	return alignment.NewScoringMatrix(match, mismatch, gapOpen, gapExtend)
}

// ProteinMatrix returns the built-in matrix with the given lowercase name.
func ProteinMatrix(name string) (*SubstitutionMatrix, error) {
	return alignment.NamedProteinScheme(name)
}

// Align aligns query against target.
func Align(ctx context.Context, query, target []byte, mode Mode, scheme Scheme) (*Alignment, error) {
	return alignment.Align(ctx, query, target, mode, scheme)
}

// AlignBatch aligns every pair in parallel and returns results in input
// order.
func AlignBatch(ctx context.Context, pairs []Pair, mode Mode, scheme Scheme) ([]*Alignment, error) {
	return alignment.AlignBatch(ctx, pairs, mode, scheme)
}

// ProgressiveMSA aligns seqs with the "nucleotide" or "protein" scheme.
func ProgressiveMSA(ctx context.Context, seqs [][]byte, selector string) (*MSAResult, error) {
	return msa.ProgressiveMSA(ctx, seqs, selector)
}

// MultipleAlign aligns seqs with explicit options.
func MultipleAlign(ctx context.Context, seqs [][]byte, opts MSAOptions) (*MSAResult, error) {
	return msa.Align(ctx, seqs, opts)
}

// Conservation is the mean per-column conservation of aligned rows.
func Conservation(rows [][]byte) float64 {
	return msa.Conservation(rows)
}

// ParseCigar parses a SAM CIGAR string.
func ParseCigar(s string) (Cigar, error) {
	return cigar.Parse(s)
}

// ReadFASTA parses all records from r.
func ReadFASTA(r io.Reader) ([]*Sequence, error) {
	return sequence.ReadFASTA(r)
}

// WriteFASTA writes seqs wrapped at width residues per line.
func WriteFASTA(w io.Writer, seqs []*Sequence, width int) error {
	return sequence.WriteFASTA(w, seqs, width)
}
