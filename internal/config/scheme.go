package config

import "github.com/aria-lang/bioalign/internal/alignment"

// SchemeSpec selects a scoring scheme either by substitution matrix name or
// by simple parameters. Nil parameters fall back to the configured defaults.
// With a matrix, only the gap parameters apply.
type SchemeSpec struct {
	Matrix    string `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	Match     *int   `json:"match,omitempty" yaml:"match,omitempty"`
	Mismatch  *int   `json:"mismatch,omitempty" yaml:"mismatch,omitempty"`
	GapOpen   *int   `json:"gap_open,omitempty" yaml:"gap_open,omitempty"`
	GapExtend *int   `json:"gap_extend,omitempty" yaml:"gap_extend,omitempty"`
}

func (s *SchemeSpec) simple() bool {
	return s.Match != nil || s.Mismatch != nil
}

func pick(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

// ResolveScheme builds the scheme described by spec over the configured
// defaults. A nil spec returns the default scheme.
func (c *Config) ResolveScheme(spec *SchemeSpec) (alignment.Scheme, error) {
	if spec == nil {
		return c.Scheme()
	}

	d := c.Defaults
	matrix := spec.Matrix
	if matrix == "" && !spec.simple() {
		matrix = d.Matrix
	}

	if matrix != "" {
		m, err := alignment.NamedProteinScheme(matrix)
		if err != nil {
			return nil, err
		}
		if spec.GapOpen == nil && spec.GapExtend == nil {
			return m, nil
		}
		custom, err := m.WithGaps(pick(spec.GapOpen, m.GapOpen()), pick(spec.GapExtend, m.GapExtend()))
		if err != nil {
			return nil, err
		}
		return custom, nil
	}

	s, err := alignment.NewScoringMatrix(
		pick(spec.Match, d.Match),
		pick(spec.Mismatch, d.Mismatch),
		pick(spec.GapOpen, d.GapOpen),
		pick(spec.GapExtend, d.GapExtend),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveMode parses name, falling back to the configured default mode
// when name is empty.
func (c *Config) ResolveMode(name string) (alignment.Mode, error) {
	if name == "" {
		return c.Mode()
	}
	return alignment.ParseMode(name)
}
