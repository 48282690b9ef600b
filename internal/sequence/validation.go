package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct {
	ID string
}

func (e *EmptySequenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("sequence %q must have at least one residue", e.ID)
	}
	return "sequence must have at least one residue"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidBaseError is returned when a residue is outside the alphabet.
type InvalidBaseError struct {
	Position int
	Found    byte
	Alphabet Alphabet
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid %s residue %q at position %d", e.Alphabet, e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// FormatError is returned when FASTA input is malformed.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("fasta line %d: %s", e.Line, e.Reason)
}

func (e *FormatError) IsSequenceError() {}

// Validate checks that every residue of seq belongs to alphabet.
// Lowercase residues are accepted. Unknown accepts any printable ASCII
// residue except the gap symbol.
func Validate(seq []byte, alphabet Alphabet) error {
	for i, r := range seq {
		if !alphabet.Contains(r) {
			return &InvalidBaseError{Position: i, Found: r, Alphabet: alphabet}
		}
	}
	return nil
}

// ValidateDNA validates that seq contains only DNA bases.
func ValidateDNA(seq []byte) error {
	return Validate(seq, DNA)
}

// ValidateRNA validates that seq contains only RNA bases.
func ValidateRNA(seq []byte) error {
	return Validate(seq, RNA)
}

// ValidateProtein validates that seq contains only amino acid codes.
func ValidateProtein(seq []byte) error {
	return Validate(seq, Protein)
}
