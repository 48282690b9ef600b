package alignment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aria-lang/bioalign/internal/cigar"
)

// Gap is the symbol inserted into aligned rows.
const Gap = cigar.Gap

// Alignment is the result of aligning a query against a target.
//
// AlignedQuery and AlignedTarget have equal length. Spans are half-open
// offsets into the original sequences; for Global they cover both sequences
// completely. Matches + Mismatches + Gaps == Length.
type Alignment struct {
	Score         int     `json:"score"`
	AlignedQuery  []byte  `json:"aligned_query"`
	AlignedTarget []byte  `json:"aligned_target"`
	QueryStart    int     `json:"query_start"`
	QueryEnd      int     `json:"query_end"`
	TargetStart   int     `json:"target_start"`
	TargetEnd     int     `json:"target_end"`
	Matches       int     `json:"matches"`
	Mismatches    int     `json:"mismatches"`
	Gaps          int     `json:"gaps"`
	Length        int     `json:"alignment_length"`
	Identity      float64 `json:"identity"`
	CIGAR         string  `json:"cigar"`
	Mode          Mode    `json:"mode"`

	ops []cigar.Op
}

// newAlignment expands a traceback path over the original sequences.
func newAlignment(query, target []byte, mode Mode, p *Path[int]) *Alignment {
	a := &Alignment{
		Score:         p.Score,
		AlignedQuery:  make([]byte, 0, len(p.Ops)),
		AlignedTarget: make([]byte, 0, len(p.Ops)),
		QueryStart:    p.RowStart,
		QueryEnd:      p.RowEnd,
		TargetStart:   p.ColStart,
		TargetEnd:     p.ColEnd,
		Length:        len(p.Ops),
		Mode:          mode,
		ops:           p.Ops,
	}
	i, j := p.RowStart, p.ColStart
	for _, op := range p.Ops {
		switch op {
		case cigar.Match:
			q, t := query[i], target[j]
			a.AlignedQuery = append(a.AlignedQuery, q)
			a.AlignedTarget = append(a.AlignedTarget, t)
			if EqualFold(q, t) {
				a.Matches++
			} else {
				a.Mismatches++
			}
			i++
			j++
		case cigar.Insertion:
			a.AlignedQuery = append(a.AlignedQuery, query[i])
			a.AlignedTarget = append(a.AlignedTarget, Gap)
			a.Gaps++
			i++
		case cigar.Deletion:
			a.AlignedQuery = append(a.AlignedQuery, Gap)
			a.AlignedTarget = append(a.AlignedTarget, target[j])
			a.Gaps++
			j++
		}
	}
	if a.Length > 0 {
		a.Identity = float64(a.Matches) / float64(a.Length)
	}
	a.CIGAR = cigar.Encode(p.Ops).String()
	return a
}

// Ops returns the per-column operations in alignment order.
func (a *Alignment) Ops() []cigar.Op {
	return append([]cigar.Op(nil), a.ops...)
}

// Cigar returns the run-length encoded operations.
func (a *Alignment) Cigar() cigar.Cigar {
	return cigar.Encode(a.ops)
}

// ExtendedCIGAR distinguishes matches (=) from mismatches (X).
func (a *Alignment) ExtendedCIGAR() string {
	ops := make([]cigar.Op, len(a.ops))
	for k, op := range a.ops {
		switch {
		case op != cigar.Match:
			ops[k] = op
		case EqualFold(a.AlignedQuery[k], a.AlignedTarget[k]):
			ops[k] = cigar.Equal
		default:
			ops[k] = cigar.Diff
		}
	}
	return cigar.Encode(ops).String()
}

// GapOpenings counts the number of gap runs on either side.
func (a *Alignment) GapOpenings() int {
	openings := 0
	prev := cigar.Match
	for _, op := range a.ops {
		if op != cigar.Match && op != prev {
			openings++
		}
		prev = op
	}
	return openings
}

// MatchLine renders '|' for matches, '.' for mismatches and ' ' for gaps.
func (a *Alignment) MatchLine() string {
	var b strings.Builder
	b.Grow(len(a.ops))
	for k, op := range a.ops {
		switch {
		case op != cigar.Match:
			b.WriteByte(' ')
		case EqualFold(a.AlignedQuery[k], a.AlignedTarget[k]):
			b.WriteByte('|')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Format renders the alignment in blocks of width columns with 1-based
// coordinates. A non-positive width renders a single block.
func (a *Alignment) Format(width int) string {
	if width <= 0 {
		width = max(a.Length, 1)
	}
	match := a.MatchLine()
	var b strings.Builder
	qPos, tPos := a.QueryStart, a.TargetStart
	for start := 0; start < a.Length; start += width {
		end := min(start+width, a.Length)
		qBlock, tBlock := a.AlignedQuery[start:end], a.AlignedTarget[start:end]
		qNext := qPos + consumed(a.ops[start:end], cigar.Op.ConsumesQuery)
		tNext := tPos + consumed(a.ops[start:end], cigar.Op.ConsumesReference)
		fmt.Fprintf(&b, "Qry %6d %s %d\n", qPos+1, qBlock, qNext)
		fmt.Fprintf(&b, "    %6s %s\n", "", match[start:end])
		fmt.Fprintf(&b, "Tgt %6d %s %d\n\n", tPos+1, tBlock, tNext)
		qPos, tPos = qNext, tNext
	}
	fmt.Fprintf(&b, "Score: %d\nIdentity: %.1f%%\nCIGAR: %s", a.Score, a.Identity*100, a.CIGAR)
	return b.String()
}

func consumed(ops []cigar.Op, advances func(cigar.Op) bool) int {
	n := 0
	for _, op := range ops {
		if advances(op) {
			n++
		}
	}
	return n
}

// MarshalJSON renders the aligned rows as strings and adds the extended
// CIGAR.
func (a *Alignment) MarshalJSON() ([]byte, error) {
	type plain Alignment
	return json.Marshal(struct {
		*plain
		AlignedQuery  string `json:"aligned_query"`
		AlignedTarget string `json:"aligned_target"`
		ExtendedCIGAR string `json:"extended_cigar"`
	}{
		plain:         (*plain)(a),
		AlignedQuery:  string(a.AlignedQuery),
		AlignedTarget: string(a.AlignedTarget),
		ExtendedCIGAR: a.ExtendedCIGAR(),
	})
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { mode: %s, score: %d, identity: %.1f%%, length: %d, cigar: %s }",
		a.Mode, a.Score, a.Identity*100, a.Length, a.CIGAR)
}

// PercentIdentity calculates percent identity between two aligned rows.
// Gap columns count towards the length, and residues compare
// case-insensitively.
func PercentIdentity(aligned1, aligned2 []byte) (float64, error) {
	if len(aligned1) != len(aligned2) {
		return 0, fmt.Errorf("aligned sequences must have equal length")
	}
	if len(aligned1) == 0 {
		return 0, fmt.Errorf("aligned sequences cannot be empty")
	}

	matches := 0
	for i := 0; i < len(aligned1); i++ {
		if aligned1[i] != Gap && EqualFold(aligned1[i], aligned2[i]) {
			matches++
		}
	}

	return float64(matches) / float64(len(aligned1)) * 100.0, nil
}
