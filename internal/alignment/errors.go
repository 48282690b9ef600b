package alignment

import (
	"fmt"
	"math"
	"strings"
)

// Error is implemented by every failure the alignment core reports before or
// instead of producing a result.
type Error interface {
	error
	IsAlignError()
}

// ConfigError is returned when a mode, matrix name or scoring parameter is
// rejected. It is always raised before any DP work starts.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
	Valid  []string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s %q", e.Field, e.Value)
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, " (valid: %s)", strings.Join(e.Valid, ", "))
	}
	return b.String()
}

func (e *ConfigError) IsAlignError() {}

// InputError is returned when a sequence argument cannot be aligned, such as
// an empty sequence or too few sequences for a multiple alignment.
type InputError struct {
	Arg    string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Arg, e.Reason)
}

func (e *InputError) IsAlignError() {}

// ResourceError is returned when the DP matrix for an input would exceed
// the configured cell ceiling.
type ResourceError struct {
	Arg   string
	Cells int64
	Limit int64
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s needs %d matrix cells, limit is %d", e.Arg, e.Cells, e.Limit)
}

func (e *ResourceError) IsAlignError() {}

// Cells returns a*b, saturating at math.MaxInt64.
func Cells(a, b int) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if int64(a) > math.MaxInt64/int64(b) {
		return math.MaxInt64
	}
	return int64(a) * int64(b)
}
