package alignment

import (
	"context"
	"fmt"

	"github.com/aria-lang/bioalign/internal/cigar"
)

// Number is the score type of the DP core. Pairwise alignment scores in
// int, profile alignment in float64.
type Number interface {
	~int | ~float64
}

// Pointer cell layout: the low two bits hold the H source, the next two
// bits record whether E and F extended an existing gap.
const (
	srcStop uint8 = iota
	srcDiag
	srcE
	srcF

	srcMask uint8 = 3
	eExtend uint8 = 4
	fExtend uint8 = 8
)

type traceState int

const (
	inH traceState = iota
	inE
	inF
)

// Grid is one affine-gap DP problem over Rows query positions and Cols
// target positions.
//
// E holds horizontal moves (a target residue against a gap) and F vertical
// moves (a query residue against a gap). At equal scores H prefers the
// diagonal, then E, then F, and E/F prefer extending over opening.
type Grid[T Number] struct {
	Rows, Cols int
	Mode       Mode
	GapOpen    T
	GapExtend  T
	// NegInf must be low enough that adding a few thousand gap penalties
	// does not wrap.
	NegInf T
	// Band, when positive, restricts the DP to cells with |i-j| <= Band.
	// Global mode widens it to |Rows-Cols| so the corner stays reachable.
	Band int
	// Score returns the substitution score of query position i against
	// target position j (both 0-based).
	Score func(i, j int) T
}

// Path is the outcome of a traceback. Ops are in alignment order and the
// row/column spans are half-open.
type Path[T Number] struct {
	Score    T
	Ops      []cigar.Op
	RowStart int
	RowEnd   int
	ColStart int
	ColEnd   int
}

// Solve fills the full pointer matrix and traces back the optimal path.
func (g *Grid[T]) Solve(ctx context.Context) (*Path[T], error) {
	stride := g.Cols + 1
	ptr := make([]uint8, (g.Rows+1)*stride)
	best, bi, bj, err := g.fill(ctx, ptr)
	if err != nil {
		return nil, err
	}
	ops, i, j := g.traceback(ptr, bi, bj)
	return &Path[T]{Score: best, Ops: ops, RowStart: i, RowEnd: bi, ColStart: j, ColEnd: bj}, nil
}

// ScoreOnly runs the same recurrence with linear memory and returns only the
// optimal score.
func (g *Grid[T]) ScoreOnly(ctx context.Context) (T, error) {
	best, _, _, err := g.fill(ctx, nil)
	return best, err
}

func (g *Grid[T]) band() int {
	if g.Band <= 0 {
		return 0
	}
	if d := abs(g.Rows - g.Cols); g.Mode == Global && g.Band < d {
		return d
	}
	return g.Band
}

func (g *Grid[T]) fill(ctx context.Context, ptr []uint8) (T, int, int, error) {
	m, n := g.Rows, g.Cols
	stride := n + 1
	band := g.band()
	outside := func(i, j int) bool { return band > 0 && abs(i-j) > band }
	neg := g.NegInf

	prevH := make([]T, n+1)
	curH := make([]T, n+1)
	prevF := make([]T, n+1)
	curF := make([]T, n+1)
	for j := 0; j <= n; j++ {
		prevF[j] = neg
	}
	for j := 1; j <= n; j++ {
		switch {
		case outside(0, j):
			prevH[j] = neg
		case g.Mode == Global:
			prevH[j] = g.GapOpen + T(j-1)*g.GapExtend
			if ptr != nil {
				ptr[j] = srcE
				if j > 1 {
					ptr[j] |= eExtend
				}
			}
		default:
			prevH[j] = 0
		}
	}

	var best T
	bi, bj := 0, 0
	colBest, colRow := neg, 0

	for i := 1; i <= m; i++ {
		if err := ctx.Err(); err != nil {
			return best, 0, 0, fmt.Errorf("alignment stopped at row %d of %d: %w", i, m, err)
		}
		row := i * stride
		switch {
		case outside(i, 0):
			curH[0] = neg
		case g.Mode == Global:
			curH[0] = g.GapOpen + T(i-1)*g.GapExtend
			if ptr != nil {
				ptr[row] = srcF
				if i > 1 {
					ptr[row] |= fExtend
				}
			}
		default:
			curH[0] = 0
		}
		curF[0] = neg

		e := neg
		for j := 1; j <= n; j++ {
			if outside(i, j) {
				curH[j], curF[j], e = neg, neg, neg
				continue
			}
			var bits uint8
			if ext, open := e+g.GapExtend, curH[j-1]+g.GapOpen; ext >= open {
				e = ext
				bits |= eExtend
			} else {
				e = open
			}
			f := prevF[j] + g.GapExtend
			if open := prevH[j] + g.GapOpen; f >= open {
				bits |= fExtend
			} else {
				f = open
			}
			curF[j] = f

			h := prevH[j-1] + g.Score(i-1, j-1)
			src := srcDiag
			if e > h {
				h, src = e, srcE
			}
			if f > h {
				h, src = f, srcF
			}
			if g.Mode == Local {
				if h <= 0 {
					h, src = 0, srcStop
				}
				if h > best {
					best, bi, bj = h, i, j
				}
			}
			curH[j] = h
			if ptr != nil {
				ptr[row+j] = bits | src
			}
		}
		if g.Mode == SemiGlobal && i < m && curH[n] > colBest {
			colBest, colRow = curH[n], i
		}
		prevH, curH = curH, prevH
		prevF, curF = curF, prevF
	}

	switch g.Mode {
	case Global:
		best, bi, bj = prevH[n], m, n
	case SemiGlobal:
		best, bi, bj = prevH[n], m, n
		for j := 1; j < n; j++ {
			if prevH[j] > best {
				best, bi, bj = prevH[j], m, j
			}
		}
		if colRow > 0 && colBest > best {
			best, bi, bj = colBest, colRow, n
		}
	}
	return best, bi, bj, nil
}

func (g *Grid[T]) traceback(ptr []uint8, bi, bj int) ([]cigar.Op, int, int) {
	stride := g.Cols + 1
	var ops []cigar.Op
	i, j := bi, bj
	state := inH
walk:
	for i > 0 || j > 0 {
		p := ptr[i*stride+j]
		switch state {
		case inH:
			switch p & srcMask {
			case srcStop:
				break walk
			case srcDiag:
				ops = append(ops, cigar.Match)
				i--
				j--
			case srcE:
				state = inE
			case srcF:
				state = inF
			}
		case inE:
			ops = append(ops, cigar.Deletion)
			if p&eExtend == 0 {
				state = inH
			}
			j--
		case inF:
			ops = append(ops, cigar.Insertion)
			if p&fExtend == 0 {
				state = inH
			}
			i--
		}
	}
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops, i, j
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
