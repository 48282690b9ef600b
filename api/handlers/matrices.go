package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/msa"
)

// MatrixInfo describes one substitution matrix. Scores is only filled for
// single-matrix requests and is indexed by Alphabet.
type MatrixInfo struct {
	Name      string  `json:"name"`
	GapOpen   int     `json:"gap_open"`
	GapExtend int     `json:"gap_extend"`
	Alphabet  string  `json:"alphabet,omitempty"`
	Scores    [][]int `json:"scores,omitempty"`
}

// MatricesResponse lists the built-in matrices and the accepted modes and
// scheme selectors.
type MatricesResponse struct {
	Matrices  []MatrixInfo `json:"matrices"`
	Modes     []string     `json:"modes"`
	Selectors []string     `json:"selectors"`
}

// Matrices handles GET /api/matrices.
func (h *Handler) Matrices(w http.ResponseWriter, r *http.Request) {
	presets := alignment.Presets()
	resp := MatricesResponse{
		Matrices:  make([]MatrixInfo, len(presets)),
		Modes:     alignment.ModeNames(),
		Selectors: msa.Selectors(),
	}
	for i, m := range presets {
		resp.Matrices[i] = MatrixInfo{Name: m.Name(), GapOpen: m.GapOpen(), GapExtend: m.GapExtend()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Matrix handles GET /api/matrices/{name}.
func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
	m, err := alignment.NamedProteinScheme(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: "config", Field: "matrix", Valid: alignment.MatrixNames()})
		return
	}

	alphabet := m.Alphabet()
	scores := make([][]int, len(alphabet))
	for i := range scores {
		scores[i] = make([]int, len(alphabet))
		for j := range scores[i] {
			scores[i][j] = m.Pair(alphabet[i], alphabet[j])
		}
	}
	writeJSON(w, http.StatusOK, MatrixInfo{
		Name:      m.Name(),
		GapOpen:   m.GapOpen(),
		GapExtend: m.GapExtend(),
		Alphabet:  alphabet,
		Scores:    scores,
	})
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health.
func Health(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version})
	}
}
