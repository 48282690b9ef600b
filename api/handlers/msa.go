package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/config"
	"github.com/aria-lang/bioalign/internal/metrics"
	"github.com/aria-lang/bioalign/internal/msa"
	"github.com/aria-lang/bioalign/internal/sequence"
)

// MSARequest is a progressive multiple alignment request.
//
// Scheme selects "nucleotide" or "protein" scoring; when empty it is
// detected from the residues. Scoring, when set, replaces the selected
// scheme with an explicit one.
type MSARequest struct {
	Sequences []string           `json:"sequences" validate:"required"`
	Names     []string           `json:"names,omitempty"`
	Scheme    string             `json:"scheme,omitempty"`
	Scoring   *config.SchemeSpec `json:"scoring,omitempty"`
	Distance  string             `json:"distance,omitempty"`
	KmerSize  int                `json:"kmer_size,omitempty" validate:"gte=0"`
}

// MSA handles POST /api/msa.
func (h *Handler) MSA(w http.ResponseWriter, r *http.Request) {
	var req MSARequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if limit := h.cfg.Limits.MaxMSASequences; len(req.Sequences) > limit {
		h.writeError(w, r, &alignment.InputError{Arg: "sequences", Reason: fmt.Sprintf("%d sequences exceeds the limit of %d", len(req.Sequences), limit)})
		return
	}

	seqs := make([][]byte, len(req.Sequences))
	for i, s := range req.Sequences {
		seqs[i] = []byte(s)
	}
	scheme, err := h.msaScheme(req, seqs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	distance, err := msa.ParseDistance(req.Distance)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	release, err := h.acquire(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer release()

	total := 0
	for _, s := range seqs {
		total += len(s)
	}
	start := time.Now()
	res, err := msa.Align(ctx, seqs, msa.Options{
		Scheme:   scheme,
		Distance: distance,
		KmerSize: req.KmerSize,
		Workers:  h.cfg.Limits.Workers,
		MaxCells: h.cfg.Limits.MaxMSACells,
		Names:    req.Names,
	})
	metrics.ObserveAlignment("msa", alignment.Cells(total, total), time.Since(start), err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) msaScheme(req MSARequest, seqs [][]byte) (alignment.Scheme, error) {
	if req.Scoring != nil {
		return h.cfg.ResolveScheme(req.Scoring)
	}
	selector := req.Scheme
	if selector == "" {
		records := make([]*sequence.Sequence, len(seqs))
		for i, s := range seqs {
			records[i] = &sequence.Sequence{Residues: alignment.Upper(s)}
		}
		selector = sequence.DetectAll(records).Selector()
	}
	return msa.SchemeFor(selector)
}
