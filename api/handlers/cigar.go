package handlers

import (
	"net/http"

	"github.com/aria-lang/bioalign/internal/cigar"
)

// CigarRequest carries a CIGAR and, for decoding, the ungapped sequences
// it describes.
type CigarRequest struct {
	Cigar     string `json:"cigar" validate:"required"`
	Query     string `json:"query,omitempty"`
	Target    string `json:"target,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// DecodeResponse holds the gapped rows rebuilt from a CIGAR.
type DecodeResponse struct {
	AlignedQuery  string `json:"aligned_query"`
	AlignedTarget string `json:"aligned_target"`
	MD            string `json:"md,omitempty"`
}

// parseCigar decodes the request and parses its CIGAR. CIGAR errors are
// client errors.
func (h *Handler) parseCigar(w http.ResponseWriter, r *http.Request) (*CigarRequest, cigar.Cigar, bool) {
	var req CigarRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return nil, nil, false
	}
	c, err := cigar.Parse(req.Cigar)
	if err != nil {
		h.writeError(w, r, &requestError{msg: err.Error(), field: "cigar"})
		return nil, nil, false
	}
	return &req, c, true
}

// CigarStats handles POST /api/cigar/stats.
func (h *Handler) CigarStats(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.parseCigar(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Stats())
}

// CigarDecode handles POST /api/cigar/decode. When a reference is given the
// MD tag is computed against it as well.
func (h *Handler) CigarDecode(w http.ResponseWriter, r *http.Request) {
	req, c, ok := h.parseCigar(w, r)
	if !ok {
		return
	}
	q, t, err := c.Apply([]byte(req.Query), []byte(req.Target))
	if err != nil {
		h.writeError(w, r, &requestError{msg: err.Error(), field: "cigar"})
		return
	}
	resp := DecodeResponse{AlignedQuery: string(q), AlignedTarget: string(t)}
	if req.Reference != "" {
		md, err := c.MDTag([]byte(req.Query), []byte(req.Reference))
		if err != nil {
			h.writeError(w, r, &requestError{msg: err.Error(), field: "reference"})
			return
		}
		resp.MD = md
	}
	writeJSON(w, http.StatusOK, resp)
}
