// Package msa builds progressive multiple sequence alignments.
//
// Sequences are clustered into a guide tree by average linkage over pairwise
// distances, then merged bottom-up by aligning profiles against each other
// with the affine-gap DP core of package alignment.
package msa

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aria-lang/bioalign/internal/alignment"
)

// DefaultMaxCells caps N^2 * avgLen^2 for one multiple alignment.
const DefaultMaxCells int64 = 1 << 34

// DefaultKmerSize is used by DistanceKmer when Options.KmerSize is zero.
const DefaultKmerSize = 4

var selectors = []string{"nucleotide", "protein"}

// SchemeFor maps a scheme selector to its scoring scheme: "nucleotide"
// selects the default DNA scheme and "protein" BLOSUM62.
func SchemeFor(selector string) (alignment.Scheme, error) {
	switch selector {
	case "nucleotide":
		return alignment.DefaultDNA(), nil
	case "protein":
		return alignment.BLOSUM62, nil
	}
	return nil, &alignment.ConfigError{Field: "scheme", Value: selector, Reason: "unknown scheme selector", Valid: selectors}
}

// Selectors lists the accepted scheme selectors.
func Selectors() []string {
	return append([]string(nil), selectors...)
}

// Options configures a multiple alignment.
type Options struct {
	Scheme   alignment.Scheme
	Distance Distance
	// KmerSize is the k used by DistanceKmer.
	KmerSize int
	// Workers bounds the parallel pairwise step. Zero means GOMAXPROCS.
	Workers int
	// MaxCells rejects inputs where N^2 * avgLen^2 exceeds it. Zero means
	// DefaultMaxCells; negative disables the guard.
	MaxCells int64
	// Names optionally labels the sequences in the guide tree.
	Names []string
}

// Result is a multiple alignment. Aligned rows follow input order and have
// equal length.
type Result struct {
	Aligned            [][]byte   `json:"aligned"`
	NSequences         int        `json:"n_sequences"`
	NColumns           int        `json:"n_columns"`
	Conservation       float64    `json:"conservation"`
	ColumnConservation []float64  `json:"column_conservation"`
	Newick             string     `json:"guide_tree"`
	Tree               *GuideTree `json:"-"`
}

// MarshalJSON renders the aligned rows as strings.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	rows := make([]string, len(r.Aligned))
	for i, row := range r.Aligned {
		rows[i] = string(row)
	}
	return json.Marshal(struct {
		*plain
		Aligned []string `json:"aligned"`
	}{plain: (*plain)(r), Aligned: rows})
}

// ProgressiveMSA aligns seqs with the scheme named by selector.
func ProgressiveMSA(ctx context.Context, seqs [][]byte, selector string) (*Result, error) {
	scheme, err := SchemeFor(selector)
	if err != nil {
		return nil, err
	}
	return Align(ctx, seqs, Options{Scheme: scheme})
}

func (o *Options) validate(seqs [][]byte) error {
	if o.Scheme == nil {
		return &alignment.ConfigError{Field: "scheme", Reason: "no scoring scheme"}
	}
	if err := o.Scheme.Validate(); err != nil {
		return err
	}
	if o.KmerSize < 0 {
		return &alignment.ConfigError{Field: "kmer_size", Value: fmt.Sprint(o.KmerSize), Reason: "k-mer size must be >= 0"}
	}
	if o.Workers < 0 {
		return &alignment.ConfigError{Field: "workers", Value: fmt.Sprint(o.Workers), Reason: "workers must be >= 0"}
	}
	if o.Distance != DistanceIdentity && o.Distance != DistanceKmer {
		return &alignment.ConfigError{Field: "distance", Value: o.Distance.String(), Reason: "unknown distance", Valid: distanceNames}
	}

	if len(seqs) < 2 {
		return &alignment.InputError{Arg: "sequences", Reason: fmt.Sprintf("need at least 2 sequences, got %d", len(seqs))}
	}
	if o.Names != nil && len(o.Names) != len(seqs) {
		return &alignment.InputError{Arg: "names", Reason: fmt.Sprintf("got %d names for %d sequences", len(o.Names), len(seqs))}
	}
	total := 0
	for i, s := range seqs {
		if len(s) == 0 {
			return &alignment.InputError{Arg: fmt.Sprintf("sequences[%d]", i), Reason: "sequence is empty"}
		}
		total += len(s)
	}

	limit := o.MaxCells
	if limit == 0 {
		limit = DefaultMaxCells
	}
	// N^2 * avgLen^2 is the square of the total residue count.
	if cells := alignment.Cells(total, total); limit > 0 && cells > limit {
		return &alignment.ResourceError{Arg: "sequences", Cells: cells, Limit: limit}
	}
	return nil
}

// Align builds a progressive multiple alignment of seqs. It fails as a whole
// if any step fails; no partial alignment is returned.
func Align(ctx context.Context, seqs [][]byte, opts Options) (*Result, error) {
	if err := opts.validate(seqs); err != nil {
		return nil, err
	}

	var dist [][]float64
	var err error
	switch opts.Distance {
	case DistanceKmer:
		k := opts.KmerSize
		if k == 0 {
			k = DefaultKmerSize
		}
		dist, err = KmerDistanceMatrix(seqs, k)
	default:
		aligner := &alignment.Aligner{Mode: alignment.Global, Scheme: opts.Scheme, Workers: opts.Workers}
		dist, err = DistanceMatrix(ctx, aligner, seqs)
	}
	if err != nil {
		return nil, err
	}

	tree, err := BuildGuideTree(dist)
	if err != nil {
		return nil, err
	}

	profiles := make(map[int]*profile, 2*len(seqs)-1)
	for i, s := range seqs {
		profiles[i] = leaf(i, s)
	}
	for _, node := range tree.Merges {
		merged, err := merge(ctx, opts.Scheme, profiles[node.Left.ID], profiles[node.Right.ID])
		if err != nil {
			return nil, fmt.Errorf("merge step %d: %w", node.Order, err)
		}
		delete(profiles, node.Left.ID)
		delete(profiles, node.Right.ID)
		profiles[node.ID] = merged
	}
	root := profiles[tree.Root.ID]

	aligned := make([][]byte, len(seqs))
	for r, idx := range root.members {
		aligned[idx] = root.rows[r]
	}

	cols := ColumnConservation(aligned)
	return &Result{
		Aligned:            aligned,
		NSequences:         len(seqs),
		NColumns:           root.width(),
		Conservation:       mean(cols),
		ColumnConservation: cols,
		Newick:             tree.Newick(opts.Names),
		Tree:               tree,
	}, nil
}
