package msa

import (
	"context"
	"math"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/cigar"
)

type residueCount struct {
	residue byte
	n       int
}

// column is the residue distribution of one profile column. Residues are
// upper-cased; gaps are counted separately.
type column struct {
	residues []residueCount
	gaps     int
}

// profile is a set of already aligned rows with equal length. members holds
// the input index of each row.
type profile struct {
	members []int
	rows    [][]byte
	cols    []column
}

func leaf(index int, seq []byte) *profile {
	p := &profile{members: []int{index}, rows: [][]byte{seq}}
	p.tally()
	return p
}

func (p *profile) width() int {
	if len(p.rows) == 0 {
		return 0
	}
	return len(p.rows[0])
}

func (p *profile) tally() {
	p.cols = make([]column, p.width())
	for c := range p.cols {
		var counts [256]int
		col := &p.cols[c]
		for _, row := range p.rows {
			r := row[c]
			if r == alignment.Gap {
				col.gaps++
				continue
			}
			counts[upper(r)]++
		}
		for r, n := range counts {
			if n > 0 {
				col.residues = append(col.residues, residueCount{residue: byte(r), n: n})
			}
		}
	}
}

// columnScore is the expected pair score between two columns: residue pairs
// score through the scheme, a residue against a gap costs one gap
// extension, and a gap against a gap is free. The sum is averaged over all
// row pairs.
func columnScore(scheme alignment.Scheme, a, b column, na, nb int) float64 {
	var sum float64
	for _, x := range a.residues {
		for _, y := range b.residues {
			sum += float64(x.n * y.n * scheme.Pair(x.residue, y.residue))
		}
	}
	mixed := a.gaps*(nb-b.gaps) + (na-a.gaps)*b.gaps
	sum += float64(mixed * scheme.GapExtend())
	return sum / float64(na*nb)
}

// merge globally aligns two profiles column against column and returns the
// combined profile. Rows of a come first.
func merge(ctx context.Context, scheme alignment.Scheme, a, b *profile) (*profile, error) {
	na, nb := len(a.rows), len(b.rows)
	grid := &alignment.Grid[float64]{
		Rows:      a.width(),
		Cols:      b.width(),
		Mode:      alignment.Global,
		GapOpen:   float64(scheme.GapOpen()),
		GapExtend: float64(scheme.GapExtend()),
		NegInf:    math.Inf(-1),
		Score: func(i, j int) float64 {
			return columnScore(scheme, a.cols[i], b.cols[j], na, nb)
		},
	}
	path, err := grid.Solve(ctx)
	if err != nil {
		return nil, err
	}

	out := &profile{
		members: append(append(make([]int, 0, na+nb), a.members...), b.members...),
		rows:    make([][]byte, na+nb),
	}
	for r := range out.rows {
		out.rows[r] = make([]byte, 0, len(path.Ops))
	}
	i, j := 0, 0
	for _, op := range path.Ops {
		takeA := op == cigar.Match || op == cigar.Insertion
		takeB := op == cigar.Match || op == cigar.Deletion
		for r, row := range a.rows {
			out.rows[r] = appendColumn(out.rows[r], row, i, takeA)
		}
		for r, row := range b.rows {
			out.rows[na+r] = appendColumn(out.rows[na+r], row, j, takeB)
		}
		if takeA {
			i++
		}
		if takeB {
			j++
		}
	}
	out.tally()
	return out, nil
}

func appendColumn(dst, row []byte, c int, take bool) []byte {
	if take {
		return append(dst, row[c])
	}
	return append(dst, alignment.Gap)
}

func upper(r byte) byte {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
