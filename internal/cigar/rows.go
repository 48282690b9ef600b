package cigar

import (
	"fmt"
	"strconv"
	"strings"
)

// Stats summarizes the operations of a CIGAR.
type Stats struct {
	Operations      int `json:"operations"`
	Columns         int `json:"columns"`
	AlignedColumns  int `json:"aligned_columns"`
	Matches         int `json:"matches"`
	Mismatches      int `json:"mismatches"`
	Insertions      int `json:"insertions"`
	Deletions       int `json:"deletions"`
	Skipped         int `json:"skipped"`
	SoftClipped     int `json:"soft_clipped"`
	HardClipped     int `json:"hard_clipped"`
	QueryLength     int `json:"query_length"`
	ReferenceLength int `json:"reference_length"`
}

// Stats counts residues per operator class. Matches and Mismatches are only
// known for =/X operators.
func (c Cigar) Stats() Stats {
	s := Stats{Operations: len(c)}
	for _, u := range c {
		switch u.Op {
		case Match:
			s.AlignedColumns += u.Len
		case Equal:
			s.AlignedColumns += u.Len
			s.Matches += u.Len
		case Diff:
			s.AlignedColumns += u.Len
			s.Mismatches += u.Len
		case Insertion:
			s.Insertions += u.Len
		case Deletion:
			s.Deletions += u.Len
		case Skip:
			s.Skipped += u.Len
		case SoftClip:
			s.SoftClipped += u.Len
		case HardClip:
			s.HardClipped += u.Len
		}
	}
	s.Columns = s.AlignedColumns + s.Insertions + s.Deletions
	s.QueryLength = c.QueryLength()
	s.ReferenceLength = c.ReferenceLength()
	return s
}

// FromRows derives a CIGAR from two gapped rows of equal length. With
// extended set, aligned pairs are written as = or X (compared
// case-insensitively) instead of M.
func FromRows(query, target []byte, extended bool) (Cigar, error) {
	if len(query) != len(target) {
		return nil, fmt.Errorf("aligned rows differ in length: %d vs %d", len(query), len(target))
	}
	ops := make([]Op, len(query))
	for i := range query {
		q, t := query[i], target[i]
		switch {
		case q == Gap && t == Gap:
			return nil, fmt.Errorf("column %d is a gap in both rows", i)
		case t == Gap:
			ops[i] = Insertion
		case q == Gap:
			ops[i] = Deletion
		case !extended:
			ops[i] = Match
		case fold(q) == fold(t):
			ops[i] = Equal
		default:
			ops[i] = Diff
		}
	}
	return Encode(ops), nil
}

// Apply expands c over the ungapped query and target, reproducing the
// gapped rows. Both sequences must be consumed exactly. Soft-clipped query
// residues and skipped reference residues are consumed without emitting a
// column.
func (c Cigar) Apply(query, target []byte) ([]byte, []byte, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	if q := c.QueryLength(); q != len(query) {
		return nil, nil, fmt.Errorf("cigar consumes %d query residues, query has %d", q, len(query))
	}
	if r := c.ReferenceLength(); r != len(target) {
		return nil, nil, fmt.Errorf("cigar consumes %d target residues, target has %d", r, len(target))
	}
	var aq, at []byte
	i, j := 0, 0
	for _, u := range c {
		switch u.Op {
		case Match, Equal, Diff:
			aq = append(aq, query[i:i+u.Len]...)
			at = append(at, target[j:j+u.Len]...)
			i += u.Len
			j += u.Len
		case Insertion:
			aq = append(aq, query[i:i+u.Len]...)
			at = appendGaps(at, u.Len)
			i += u.Len
		case Deletion:
			aq = appendGaps(aq, u.Len)
			at = append(at, target[j:j+u.Len]...)
			j += u.Len
		case SoftClip:
			i += u.Len
		case Skip:
			j += u.Len
		}
	}
	return aq, at, nil
}

// MDTag builds the SAM MD:Z value. query is the read including soft-clipped
// bases; reference starts at the first reference position the alignment
// covers.
func (c Cigar) MDTag(query, reference []byte) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if q := c.QueryLength(); q != len(query) {
		return "", fmt.Errorf("cigar consumes %d query residues, query has %d", q, len(query))
	}
	if r := c.ReferenceLength(); r > len(reference) {
		return "", fmt.Errorf("cigar consumes %d reference residues, reference has %d", r, len(reference))
	}
	var b strings.Builder
	run := 0
	i, j := 0, 0
	for _, u := range c {
		switch u.Op {
		case Match, Equal, Diff:
			for k := 0; k < u.Len; k++ {
				if fold(query[i+k]) == fold(reference[j+k]) {
					run++
					continue
				}
				b.WriteString(strconv.Itoa(run))
				b.WriteByte(fold(reference[j+k]))
				run = 0
			}
			i += u.Len
			j += u.Len
		case Deletion:
			b.WriteString(strconv.Itoa(run))
			b.WriteByte('^')
			for k := 0; k < u.Len; k++ {
				b.WriteByte(fold(reference[j+k]))
			}
			run = 0
			j += u.Len
		case Insertion, SoftClip:
			i += u.Len
		case Skip:
			j += u.Len
		}
	}
	b.WriteString(strconv.Itoa(run))
	return b.String(), nil
}

func appendGaps(row []byte, n int) []byte {
	for k := 0; k < n; k++ {
		row = append(row, Gap)
	}
	return row
}

func fold(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
