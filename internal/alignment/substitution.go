package alignment

import (
	"fmt"
	"strconv"
)

const (
	proteinAlphabet = "ARNDCQEGHILKMFPSTWYVBZX*"
	proteinSymbols  = len(proteinAlphabet)
	unknownResidue  = 'X'
)

// SubstitutionMatrix is a symmetric protein scoring table with its own gap
// penalties. Presets are shared read-only; there is no mutation path.
type SubstitutionMatrix struct {
	name      string
	table     *[proteinSymbols][proteinSymbols]int8
	index     [256]uint8
	gapOpen   int
	gapExtend int
}

// Built-in presets.
var (
	BLOSUM62 = newSubstitutionMatrix("blosum62", &blosum62Table, -11, -1)
	BLOSUM45 = newSubstitutionMatrix("blosum45", &blosum45Table, -15, -2)
	BLOSUM80 = newSubstitutionMatrix("blosum80", &blosum80Table, -10, -1)
	PAM250   = newSubstitutionMatrix("pam250", &pam250Table, -14, -2)
)

var presets = []*SubstitutionMatrix{BLOSUM62, BLOSUM45, BLOSUM80, PAM250}

func newSubstitutionMatrix(name string, table *[proteinSymbols][proteinSymbols]int8, gapOpen, gapExtend int) *SubstitutionMatrix {
	m := &SubstitutionMatrix{name: name, table: table, gapOpen: gapOpen, gapExtend: gapExtend}
	x := uint8(indexOf(unknownResidue))
	for i := range m.index {
		m.index[i] = x
	}
	for i := 0; i < proteinSymbols; i++ {
		c := proteinAlphabet[i]
		m.index[c] = uint8(i)
		if c >= 'A' && c <= 'Z' {
			m.index[c-'A'+'a'] = uint8(i)
		}
	}
	return m
}

func indexOf(c byte) int {
	for i := 0; i < proteinSymbols; i++ {
		if proteinAlphabet[i] == c {
			return i
		}
	}
	return -1
}

// NamedProteinScheme returns the preset with exactly the given name.
func NamedProteinScheme(name string) (*SubstitutionMatrix, error) {
	for _, m := range presets {
		if m.name == name {
			return m, nil
		}
	}
	return nil, &ConfigError{Field: "matrix", Value: name, Reason: "unknown substitution matrix", Valid: MatrixNames()}
}

// MatrixNames lists the preset names in a stable order.
func MatrixNames() []string {
	names := make([]string, len(presets))
	for i, m := range presets {
		names[i] = m.name
	}
	return names
}

// Presets returns the built-in matrices.
func Presets() []*SubstitutionMatrix {
	return append([]*SubstitutionMatrix(nil), presets...)
}

// WithGaps returns a matrix sharing m's table with different gap penalties.
func (m *SubstitutionMatrix) WithGaps(gapOpen, gapExtend int) (*SubstitutionMatrix, error) {
	c := *m
	c.gapOpen, c.gapExtend = gapOpen, gapExtend
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Pair looks both residues up case-insensitively. Bytes outside the
// alphabet score as X.
func (m *SubstitutionMatrix) Pair(a, b byte) int {
	return int(m.table[m.index[a]][m.index[b]])
}

func (m *SubstitutionMatrix) GapOpen() int { return m.gapOpen }
func (m *SubstitutionMatrix) GapExtend() int { return m.gapExtend }
func (m *SubstitutionMatrix) Name() string { return m.name }

// Alphabet returns the residue symbols in table order.
func (m *SubstitutionMatrix) Alphabet() string { return proteinAlphabet }

func (m *SubstitutionMatrix) Validate() error {
	if m == nil || m.table == nil {
		return &ConfigError{Field: "matrix", Value: "", Reason: "no substitution table", Valid: MatrixNames()}
	}
	if m.gapOpen > 0 || m.gapOpen < -maxParam {
		return &ConfigError{Field: "gap_open", Value: strconv.Itoa(m.gapOpen), Reason: "gap open penalty should be <= 0"}
	}
	if m.gapExtend > 0 || m.gapExtend < -maxParam {
		return &ConfigError{Field: "gap_extend", Value: strconv.Itoa(m.gapExtend), Reason: "gap extend penalty should be <= 0"}
	}
	return nil
}

func (m *SubstitutionMatrix) String() string {
	return fmt.Sprintf("SubstitutionMatrix { name: %s, gap_open: %d, gap_extend: %d }", m.name, m.gapOpen, m.gapExtend)
}
