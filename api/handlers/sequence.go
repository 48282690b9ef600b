package handlers

import (
	"net/http"

	"github.com/aria-lang/bioalign/internal/sequence"
)

// SequenceRequest carries one sequence and an optional alphabet. Without
// an alphabet it is detected from the residues.
type SequenceRequest struct {
	Sequence string `json:"sequence" validate:"required"`
	Alphabet string `json:"alphabet,omitempty" validate:"omitempty,oneof=dna rna protein"`
}

var alphabets = map[string]sequence.Alphabet{
	"dna":     sequence.DNA,
	"rna":     sequence.RNA,
	"protein": sequence.Protein,
}

func (req *SequenceRequest) parse() (*sequence.Sequence, error) {
	if req.Alphabet == "" {
		return sequence.New([]byte(req.Sequence))
	}
	return sequence.WithAlphabet("", []byte(req.Sequence), alphabets[req.Alphabet])
}

// SequenceInfoResponse represents sequence information. GCContent is only
// reported for nucleotide sequences.
type SequenceInfoResponse struct {
	Length    int      `json:"length"`
	Alphabet  string   `json:"alphabet"`
	Selector  string   `json:"selector"`
	GCContent *float64 `json:"gc_content,omitempty"`
}

// SequenceInfo handles POST /api/sequence/info.
func (h *Handler) SequenceInfo(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	seq, err := req.parse()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := SequenceInfoResponse{
		Length:   seq.Len(),
		Alphabet: seq.Alphabet.String(),
		Selector: seq.Alphabet.Selector(),
	}
	if seq.Alphabet == sequence.DNA || seq.Alphabet == sequence.RNA {
		gc := seq.GCContent()
		resp.GCContent = &gc
	}
	writeJSON(w, http.StatusOK, resp)
}

// ValidateResponse represents a validation result.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Alphabet string `json:"alphabet,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ValidateSequence handles POST /api/sequence/validate. An invalid sequence
// is a successful response with Valid false.
func (h *Handler) ValidateSequence(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	seq, err := req.parse()
	if err != nil {
		writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: true, Alphabet: seq.Alphabet.String()})
}

// ReverseComplementResponse holds the reverse complement.
type ReverseComplementResponse struct {
	Sequence string `json:"sequence"`
}

// ReverseComplement handles POST /api/sequence/reverse-complement.
func (h *Handler) ReverseComplement(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	seq, err := req.parse()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rc, err := seq.ReverseComplement()
	if err != nil {
		h.writeError(w, r, &requestError{msg: err.Error(), field: "sequence"})
		return
	}
	writeJSON(w, http.StatusOK, ReverseComplementResponse{Sequence: string(rc.Residues)})
}
