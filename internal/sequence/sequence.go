// Package sequence provides named residue sequences with alphabet detection,
// validation and FASTA input/output.
//
// Residues are stored upper-cased. A sequence is never empty.
package sequence

import (
	"bytes"
	"fmt"
	"strings"
)

// Alphabet identifies the residue vocabulary of a sequence.
type Alphabet int

const (
	// DNA is A, C, G, T plus the ambiguity code N.
	DNA Alphabet = iota
	// RNA is A, C, G, U plus N.
	RNA
	// Protein is the 20 amino acids plus B, Z, X and the stop symbol *.
	Protein
	// Unknown accepts any printable residue.
	Unknown
)

var alphabetResidues = [...]string{
	DNA:     "ACGTN",
	RNA:     "ACGUN",
	Protein: "ARNDCQEGHILKMFPSTWYVBZX*",
}

func (a Alphabet) String() string {
	switch a {
	case DNA:
		return "dna"
	case RNA:
		return "rna"
	case Protein:
		return "protein"
	default:
		return "unknown"
	}
}

// Contains reports whether r, in either case, belongs to the alphabet.
func (a Alphabet) Contains(r byte) bool {
	if r == '-' {
		return false
	}
	if a < DNA || a >= Unknown {
		return r > ' ' && r < 0x7f
	}
	return strings.IndexByte(alphabetResidues[a], upper(r)) >= 0
}

// Selector names the scoring family used for multiple alignment:
// "protein" for protein sequences and "nucleotide" otherwise.
func (a Alphabet) Selector() string {
	if a == Protein {
		return "protein"
	}
	return "nucleotide"
}

// Detect returns the narrowest alphabet containing every residue of seq,
// trying DNA, then RNA, then Protein.
func Detect(seq []byte) Alphabet {
	for _, a := range []Alphabet{DNA, RNA, Protein} {
		if Validate(seq, a) == nil {
			return a
		}
	}
	return Unknown
}

// DetectAll returns the narrowest alphabet containing every residue of
// every sequence.
func DetectAll(seqs []*Sequence) Alphabet {
	for _, a := range []Alphabet{DNA, RNA, Protein} {
		ok := true
		for _, s := range seqs {
			if Validate(s.Residues, a) != nil {
				ok = false
				break
			}
		}
		if ok {
			return a
		}
	}
	return Unknown
}

// Sequence is a validated residue sequence.
type Sequence struct {
	ID          string
	Description string
	Residues    []byte
	Alphabet    Alphabet
}

// New creates a sequence and detects its alphabet.
func New(residues []byte) (*Sequence, error) {
	if len(residues) == 0 {
		return nil, &EmptySequenceError{}
	}
	norm := toUpper(residues)
	a := Detect(norm)
	if a == Unknown {
		if err := Validate(norm, Unknown); err != nil {
			return nil, err
		}
	}
	return &Sequence{Residues: norm, Alphabet: a}, nil
}

// WithID creates a sequence with an identifier.
func WithID(id string, residues []byte) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}
	seq, err := New(residues)
	if err != nil {
		return nil, err
	}
	seq.ID = id
	return seq, nil
}

// WithAlphabet creates a sequence validated against a fixed alphabet.
func WithAlphabet(id string, residues []byte, alphabet Alphabet) (*Sequence, error) {
	if len(residues) == 0 {
		return nil, &EmptySequenceError{ID: id}
	}
	norm := toUpper(residues)
	if err := Validate(norm, alphabet); err != nil {
		return nil, err
	}
	return &Sequence{ID: id, Residues: norm, Alphabet: alphabet}, nil
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return len(s.Residues)
}

// Subsequence returns residues [start, end) as a new sequence.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end <= start {
		return nil, fmt.Errorf("end must be greater than start")
	}
	if end > len(s.Residues) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{
		ID:          s.ID,
		Description: s.Description,
		Residues:    append([]byte(nil), s.Residues[start:end]...),
		Alphabet:    s.Alphabet,
	}, nil
}

func complementBase(c byte, alphabet Alphabet) byte {
	switch c {
	case 'A':
		if alphabet == RNA {
			return 'U'
		}
		return 'T'
	case 'T', 'U':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 'N'
	}
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	if s.Alphabet != DNA && s.Alphabet != RNA {
		return nil, fmt.Errorf("reverse complement only available for nucleotide sequences, got %s", s.Alphabet)
	}

	n := len(s.Residues)
	rc := make([]byte, n)
	for i, b := range s.Residues {
		rc[n-1-i] = complementBase(b, s.Alphabet)
	}

	return &Sequence{
		ID:          s.ID,
		Description: s.Description,
		Residues:    rc,
		Alphabet:    s.Alphabet,
	}, nil
}

// GCContent calculates the proportion of G and C residues.
func (s *Sequence) GCContent() float64 {
	if len(s.Residues) == 0 {
		return 0.0
	}

	gcCount := 0
	for _, b := range s.Residues {
		if b == 'G' || b == 'C' {
			gcCount++
		}
	}

	return float64(gcCount) / float64(len(s.Residues))
}

// Header returns the FASTA header line without the leading '>'.
func (s *Sequence) Header() string {
	id := s.ID
	if id == "" {
		id = "sequence"
	}
	if s.Description != "" {
		return id + " " + s.Description
	}
	return id
}

func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Residues)
	}
	return string(s.Residues)
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(s.Residues, other.Residues) && s.Alphabet == other.Alphabet
}

func upper(r byte) byte {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func toUpper(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, r := range seq {
		out[i] = upper(r)
	}
	return out
}
