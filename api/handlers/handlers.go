// Package handlers implements the JSON endpoints of the alignment server.
//
// Every compute endpoint decodes and validates its request, then waits for
// a slot in a shared compute pool before running. Errors are mapped to
// status codes by kind: invalid configuration or input is 400, oversized
// work is 413, and a request canceled while queued or running is 503.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/config"
	"github.com/aria-lang/bioalign/internal/metrics"
	"github.com/aria-lang/bioalign/internal/sequence"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Handler serves the API endpoints. It is safe for concurrent use.
type Handler struct {
	cfg     *config.Config
	logger  *log.Logger
	compute *semaphore.Weighted
}

// New creates a handler whose compute pool is sized by cfg.Limits.Workers.
func New(cfg *config.Config, logger *log.Logger) *Handler {
	slots := cfg.Limits.Workers
	if slots <= 0 {
		slots = runtime.GOMAXPROCS(0)
	}
	return &Handler{
		cfg:     cfg,
		logger:  logger,
		compute: semaphore.NewWeighted(int64(slots)),
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string   `json:"error"`
	Kind  string   `json:"kind"`
	Field string   `json:"field,omitempty"`
	Valid []string `json:"valid,omitempty"`
}

// acquire blocks until a compute slot is free or ctx is done.
func (h *Handler) acquire(ctx context.Context) (func(), error) {
	if err := h.compute.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	metrics.ComputeAcquired()
	return func() {
		h.compute.Release(1)
		metrics.ComputeReleased()
	}, nil
}

// decode reads a JSON body of at most MaxBodyBytes into v and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &requestError{msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// requestError is a malformed or invalid request body.
type requestError struct {
	msg   string
	field string
}

func (e *requestError) Error() string { return e.msg }

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &requestError{msg: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	msg := fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("%s failed %q validation (%s)", field, fe.Tag(), fe.Param())
	}
	return &requestError{msg: msg, field: field}
}

// status classifies err into an HTTP status and response body.
func status(err error) (int, ErrorResponse) {
	var (
		cfgErr   *alignment.ConfigError
		inErr    *alignment.InputError
		resErr   *alignment.ResourceError
		reqErr   *requestError
		seqErr   sequence.SequenceError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "config", Field: cfgErr.Field, Valid: cfgErr.Valid}
	case errors.As(err, &inErr):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "input", Field: inErr.Arg}
	case errors.As(err, &resErr):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Kind: "resource", Field: resErr.Arg}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Kind: "resource"}
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "request", Field: reqErr.field}
	case errors.As(err, &seqErr):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "input"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Kind: "canceled"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: "internal"}
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, body := status(err)
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		h.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		h.logger.Debug("request rejected", "path", r.URL.Path, "status", code, "err", err)
	}
	writeJSON(w, code, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
