package alignment

import (
	"context"
	"math"
	"strconv"
)

// DefaultMaxCells caps len(query)*len(target) for a single alignment. The
// pointer matrix costs one byte per cell.
const DefaultMaxCells = 1 << 28

// intNegInf leaves headroom for adding gap penalties without wrapping.
const intNegInf = math.MinInt / 4

// Aligner aligns pairs of sequences under one mode and scheme. A configured
// Aligner holds no mutable state and is safe for concurrent use.
type Aligner struct {
	Mode   Mode
	Scheme Scheme
	// Band, when positive, limits the DP to a diagonal band of this
	// half-width.
	Band int
	// MaxCells rejects inputs whose DP matrix would be larger. Zero means
	// DefaultMaxCells; negative disables the guard.
	MaxCells int64
	// Workers bounds batch parallelism. Zero means GOMAXPROCS.
	Workers int
}

// New creates an aligner and validates its configuration.
func New(mode Mode, scheme Scheme) (*Aligner, error) {
	a := &Aligner{Mode: mode, Scheme: scheme}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate reports configuration errors before any DP work is attempted.
func (a *Aligner) Validate() error {
	if !a.Mode.Valid() {
		return &ConfigError{Field: "mode", Value: strconv.Itoa(int(a.Mode)), Reason: "unknown alignment mode", Valid: ModeNames()}
	}
	if a.Scheme == nil {
		return &ConfigError{Field: "scheme", Value: "", Reason: "no scoring scheme"}
	}
	if err := a.Scheme.Validate(); err != nil {
		return err
	}
	if a.Band < 0 {
		return &ConfigError{Field: "band", Value: strconv.Itoa(a.Band), Reason: "band must be >= 0"}
	}
	if a.Workers < 0 {
		return &ConfigError{Field: "workers", Value: strconv.Itoa(a.Workers), Reason: "workers must be >= 0"}
	}
	return nil
}

func (a *Aligner) maxCells() int64 {
	if a.MaxCells == 0 {
		return DefaultMaxCells
	}
	return a.MaxCells
}

// check validates one pair; label prefixes argument names in errors.
func (a *Aligner) check(label string, query, target []byte) error {
	if len(query) == 0 {
		return &InputError{Arg: label + "query", Reason: "sequence is empty"}
	}
	if len(target) == 0 {
		return &InputError{Arg: label + "target", Reason: "sequence is empty"}
	}
	if limit := a.maxCells(); limit > 0 {
		if cells := Cells(len(query), len(target)); cells > limit {
			return &ResourceError{Arg: label + "query x target", Cells: cells, Limit: limit}
		}
	}
	return nil
}

func (a *Aligner) grid(query, target []byte) *Grid[int] {
	scheme := a.Scheme
	return &Grid[int]{
		Rows:      len(query),
		Cols:      len(target),
		Mode:      a.Mode,
		GapOpen:   scheme.GapOpen(),
		GapExtend: scheme.GapExtend(),
		NegInf:    intNegInf,
		Band:      a.Band,
		Score: func(i, j int) int {
			return scheme.Pair(query[i], target[j])
		},
	}
}

// Align computes the optimal alignment of query against target.
//
// The context is checked once per DP row; cancellation returns an error
// wrapping ctx.Err().
func (a *Aligner) Align(ctx context.Context, query, target []byte) (*Alignment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := a.check("", query, target); err != nil {
		return nil, err
	}
	return a.align(ctx, query, target)
}

func (a *Aligner) align(ctx context.Context, query, target []byte) (*Alignment, error) {
	path, err := a.grid(query, target).Solve(ctx)
	if err != nil {
		return nil, err
	}
	return newAlignment(query, target, a.Mode, path), nil
}

// Score returns only the optimal score, using memory linear in the target
// length.
func (a *Aligner) Score(ctx context.Context, query, target []byte) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if len(query) == 0 {
		return 0, &InputError{Arg: "query", Reason: "sequence is empty"}
	}
	if len(target) == 0 {
		return 0, &InputError{Arg: "target", Reason: "sequence is empty"}
	}
	return a.grid(query, target).ScoreOnly(ctx)
}

// Align is a convenience wrapper around Aligner.Align.
func Align(ctx context.Context, query, target []byte, mode Mode, scheme Scheme) (*Alignment, error) {
	a, err := New(mode, scheme)
	if err != nil {
		return nil, err
	}
	return a.Align(ctx, query, target)
}
