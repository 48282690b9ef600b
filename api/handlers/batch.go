package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/config"
	"github.com/aria-lang/bioalign/internal/metrics"
)

// PairRequest is one pair of a batch.
type PairRequest struct {
	Query  string `json:"query"`
	Target string `json:"target"`
}

// BatchRequest aligns every pair under one mode and scheme.
type BatchRequest struct {
	Pairs  []PairRequest      `json:"pairs" validate:"required,min=1"`
	Mode   string             `json:"mode,omitempty"`
	Scheme *config.SchemeSpec `json:"scheme,omitempty"`
	Band   int                `json:"band,omitempty" validate:"gte=0"`
}

// BatchResponse holds one alignment per pair, in request order.
type BatchResponse struct {
	Alignments []*alignment.Alignment `json:"alignments"`
}

// Batch handles POST /api/align/batch. The batch runs in one compute slot
// and fans out internally over the configured workers.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if limit := h.cfg.Limits.MaxBatchPairs; len(req.Pairs) > limit {
		h.writeError(w, r, &alignment.InputError{Arg: "pairs", Reason: fmt.Sprintf("%d pairs exceeds the limit of %d", len(req.Pairs), limit)})
		return
	}
	aligner, err := h.aligner(req.Mode, req.Scheme, req.Band)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pairs := make([]alignment.Pair, len(req.Pairs))
	var cells int64
	for i, p := range req.Pairs {
		pairs[i] = alignment.Pair{Query: []byte(p.Query), Target: []byte(p.Target)}
		cells += alignment.Cells(len(p.Query), len(p.Target))
	}

	ctx := r.Context()
	release, err := h.acquire(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer release()

	start := time.Now()
	results, err := aligner.AlignBatch(ctx, pairs)
	metrics.ObserveAlignment("batch", cells, time.Since(start), err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BatchResponse{Alignments: results})
}
