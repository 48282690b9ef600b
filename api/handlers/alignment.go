package handlers

import (
	"net/http"
	"time"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/config"
	"github.com/aria-lang/bioalign/internal/metrics"
)

// AlignRequest represents a pairwise alignment request. Mode and Scheme
// fall back to the configured defaults when omitted.
type AlignRequest struct {
	Query  string             `json:"query" validate:"required"`
	Target string             `json:"target" validate:"required"`
	Mode   string             `json:"mode,omitempty"`
	Scheme *config.SchemeSpec `json:"scheme,omitempty"`
	Band   int                `json:"band,omitempty" validate:"gte=0"`
}

// ScoreResponse represents the response for a score-only request.
type ScoreResponse struct {
	Score  int    `json:"score"`
	Mode   string `json:"mode"`
	Scheme string `json:"scheme"`
}

// aligner resolves the request's mode and scheme over the configuration.
func (h *Handler) aligner(mode string, spec *config.SchemeSpec, band int) (*alignment.Aligner, error) {
	m, err := h.cfg.ResolveMode(mode)
	if err != nil {
		return nil, err
	}
	scheme, err := h.cfg.ResolveScheme(spec)
	if err != nil {
		return nil, err
	}
	a := &alignment.Aligner{
		Mode:     m,
		Scheme:   scheme,
		Band:     band,
		MaxCells: h.cfg.Limits.MaxCells,
		Workers:  h.cfg.Limits.Workers,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Align handles POST /api/align.
func (h *Handler) Align(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	aligner, err := h.aligner(req.Mode, req.Scheme, req.Band)
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

	query, target := []byte(req.Query), []byte(req.Target)
	start := time.Now()
	aln, err := aligner.Align(ctx, query, target)
	metrics.ObserveAlignment("pairwise", alignment.Cells(len(query), len(target)), time.Since(start), err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aln)
}

// Score handles POST /api/align/score.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	aligner, err := h.aligner(req.Mode, req.Scheme, req.Band)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	query, target := []byte(req.Query), []byte(req.Target)
	cells := alignment.Cells(len(query), len(target))
	if limit := h.cfg.Limits.MaxCells; cells > limit {
		h.writeError(w, r, &alignment.ResourceError{Arg: "query x target", Cells: cells, Limit: limit})
		return
	}

	ctx := r.Context()
	release, err := h.acquire(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer release()

	start := time.Now()
	score, err := aligner.Score(ctx, query, target)
	metrics.ObserveAlignment("score", cells, time.Since(start), err)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Score: score, Mode: aligner.Mode.String(), Scheme: aligner.Scheme.Name()})
}
