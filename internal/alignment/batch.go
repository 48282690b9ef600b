package alignment

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pair is one query/target input to a batch.
type Pair struct {
	Query  []byte `json:"query"`
	Target []byte `json:"target"`
}

// IndexedAlignment pairs an alignment with the index of its target.
type IndexedAlignment struct {
	Index     int
	Alignment *Alignment
}

func (a *Aligner) workers() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// AlignBatch aligns every pair independently and returns results in input
// order. Every pair is validated before any work starts; the first failure
// cancels the remaining pairs and no partial results are returned.
func (a *Aligner) AlignBatch(ctx context.Context, pairs []Pair) ([]*Alignment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	for i, p := range pairs {
		if err := a.check(fmt.Sprintf("pairs[%d].", i), p.Query, p.Target); err != nil {
			return nil, err
		}
	}

	results := make([]*Alignment, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())
	for i, p := range pairs {
		g.Go(func() error {
			aln, err := a.align(ctx, p.Query, p.Target)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			results[i] = aln
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AlignBatch is a convenience wrapper around Aligner.AlignBatch.
func AlignBatch(ctx context.Context, pairs []Pair, mode Mode, scheme Scheme) ([]*Alignment, error) {
	a, err := New(mode, scheme)
	if err != nil {
		return nil, err
	}
	return a.AlignBatch(ctx, pairs)
}

// AlignAgainstMultiple aligns one query against each target.
func (a *Aligner) AlignAgainstMultiple(ctx context.Context, query []byte, targets [][]byte) ([]IndexedAlignment, error) {
	if len(targets) == 0 {
		return nil, &InputError{Arg: "targets", Reason: "target list cannot be empty"}
	}
	pairs := make([]Pair, len(targets))
	for i, t := range targets {
		pairs[i] = Pair{Query: query, Target: t}
	}
	alns, err := a.AlignBatch(ctx, pairs)
	if err != nil {
		return nil, err
	}
	results := make([]IndexedAlignment, len(alns))
	for i, aln := range alns {
		results[i] = IndexedAlignment{Index: i, Alignment: aln}
	}
	return results, nil
}

// FindBestAlignment returns the highest scoring target. Ties keep the
// lowest index.
func (a *Aligner) FindBestAlignment(ctx context.Context, query []byte, targets [][]byte) (*IndexedAlignment, error) {
	alignments, err := a.AlignAgainstMultiple(ctx, query, targets)
	if err != nil {
		return nil, err
	}

	best := alignments[0]
	for _, al := range alignments[1:] {
		if al.Alignment.Score > best.Alignment.Score {
			best = al
		}
	}

	return &best, nil
}
