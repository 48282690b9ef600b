package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/kmer"
)

// KMerRequest represents a k-mer count request.
type KMerRequest struct {
	Sequence string `json:"sequence" validate:"required"`
	K        int    `json:"k" validate:"gte=1"`
	Top      int    `json:"top,omitempty" validate:"gte=0"`
}

// KMerItem represents a k-mer and its count.
type KMerItem struct {
	KMer  string `json:"kmer"`
	Count int    `json:"count"`
}

// KMerCountResponse represents the response for k-mer counting.
type KMerCountResponse struct {
	K           int        `json:"k"`
	UniqueCount int        `json:"unique_count"`
	TotalCount  int        `json:"total_count"`
	KMers       []KMerItem `json:"kmers"`
}

// KMerCount handles POST /api/kmer/count. Top limits the listed k-mers to
// the most frequent ones; zero lists all of them.
func (h *Handler) KMerCount(w http.ResponseWriter, r *http.Request) {
	var req KMerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	counter, err := kmer.CountKMers([]byte(req.Sequence), req.K)
	if err != nil {
		h.writeError(w, r, &alignment.InputError{Arg: "sequence", Reason: err.Error()})
		return
	}
	top := req.Top
	if top == 0 || top > counter.UniqueCount() {
		top = counter.UniqueCount()
	}
	var items []KMerItem
	if top > 0 {
		frequent, err := counter.MostFrequent(top)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		items = make([]KMerItem, len(frequent))
		for i, kc := range frequent {
			items[i] = KMerItem{KMer: kc.KMer, Count: kc.Count}
		}
	}

	writeJSON(w, http.StatusOK, KMerCountResponse{
		K:           req.K,
		UniqueCount: counter.UniqueCount(),
		TotalCount:  counter.Total,
		KMers:       items,
	})
}

// KMerDistanceRequest asks for all-pairs k-mer distances.
type KMerDistanceRequest struct {
	Sequences []string `json:"sequences" validate:"required,min=2"`
	K         int      `json:"k" validate:"gte=1"`
	Metric    string   `json:"metric,omitempty" validate:"omitempty,oneof=jaccard cosine"`
}

// KMerDistanceResponse holds the symmetric distance matrix.
type KMerDistanceResponse struct {
	K        int         `json:"k"`
	Metric   string      `json:"metric"`
	Distance [][]float64 `json:"distance"`
}

// KMerDistance handles POST /api/kmer/distance. The default metric is
// Jaccard, the one used for k-mer guide trees.
func (h *Handler) KMerDistance(w http.ResponseWriter, r *http.Request) {
	var req KMerDistanceRequest
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

	metric := req.Metric
	if metric == "" {
		metric = "jaccard"
	}
	var dist [][]float64
	var err error
	switch metric {
	case "cosine":
		dist, err = cosineMatrix(seqs, req.K)
	default:
		dist, err = kmer.DistanceMatrix(seqs, req.K)
	}
	if err != nil {
		h.writeError(w, r, &alignment.InputError{Arg: "sequences", Reason: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, KMerDistanceResponse{K: req.K, Metric: metric, Distance: dist})
}

func cosineMatrix(seqs [][]byte, k int) ([][]float64, error) {
	n := len(seqs)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := kmer.CosineDistance(seqs[i], seqs[j], k)
			if err != nil {
				return nil, fmt.Errorf("sequences %d and %d: %w", i, j, err)
			}
			dist[i][j], dist[j][i] = d, d
		}
	}
	return dist, nil
}
