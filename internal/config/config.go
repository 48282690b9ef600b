// Package config loads bioalign settings from YAML or TOML files.
//
// Files are layered over Default(): keys absent from the file keep their
// default value. The result is validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/msa"
)

// Config is the complete runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Limits   LimitsConfig   `yaml:"limits" toml:"limits"`
	Defaults DefaultsConfig `yaml:"defaults" toml:"defaults"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// ServerConfig holds HTTP listener settings. Timeouts are in seconds.
type ServerConfig struct {
	Host            string `yaml:"host" toml:"host" validate:"required"`
	Port            int    `yaml:"port" toml:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     int    `yaml:"read_timeout" toml:"read_timeout" validate:"gte=1"`
	WriteTimeout    int    `yaml:"write_timeout" toml:"write_timeout" validate:"gte=1"`
	IdleTimeout     int    `yaml:"idle_timeout" toml:"idle_timeout" validate:"gte=1"`
	RequestTimeout  int    `yaml:"request_timeout" toml:"request_timeout" validate:"gte=1"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" toml:"shutdown_timeout" validate:"gte=1"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=1024"`

	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" toml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" toml:"rate_burst" validate:"gte=0"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func (s ServerConfig) ReadTimeoutDuration() time.Duration { return seconds(s.ReadTimeout) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return seconds(s.WriteTimeout) }
func (s ServerConfig) IdleTimeoutDuration() time.Duration { return seconds(s.IdleTimeout) }
func (s ServerConfig) RequestTimeoutDuration() time.Duration { return seconds(s.RequestTimeout) }
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration { return seconds(s.ShutdownTimeout) }

// LimitsConfig bounds the work a single call may request.
type LimitsConfig struct {
	// MaxCells caps query x target for one pairwise alignment.
	MaxCells int64 `yaml:"max_cells" toml:"max_cells" validate:"gte=1"`

	// MaxMSACells caps N^2 * avgLen^2 for one multiple alignment.
	MaxMSACells     int64 `yaml:"max_msa_cells" toml:"max_msa_cells" validate:"gte=1"`
	MaxBatchPairs   int   `yaml:"max_batch_pairs" toml:"max_batch_pairs" validate:"gte=1"`
	MaxMSASequences int   `yaml:"max_msa_sequences" toml:"max_msa_sequences" validate:"gte=2"`

	// Workers sizes both the batch fan-out and the server compute pool.
	// Zero means GOMAXPROCS.
	Workers int `yaml:"workers" toml:"workers" validate:"gte=0"`
}

// DefaultsConfig is used when a request or command names no mode or
// scheme. Matrix, when set, takes precedence over the simple parameters.
type DefaultsConfig struct {
	Mode      string `yaml:"mode" toml:"mode" validate:"oneof=local global semiglobal"`
	Matrix    string `yaml:"matrix" toml:"matrix" validate:"omitempty,oneof=blosum62 blosum45 blosum80 pam250"`
	Match     int    `yaml:"match" toml:"match"`
	Mismatch  int    `yaml:"mismatch" toml:"mismatch"`
	GapOpen   int    `yaml:"gap_open" toml:"gap_open"`
	GapExtend int    `yaml:"gap_extend" toml:"gap_extend"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dna := alignment.DefaultDNA()
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     15,
			WriteTimeout:    60,
			IdleTimeout:     60,
			RequestTimeout:  60,
			ShutdownTimeout: 30,
			MaxBodyBytes:    8 << 20,
			RateLimit:       0,
			RateBurst:       20,
		},
		Limits: LimitsConfig{
			MaxCells:        alignment.DefaultMaxCells,
			MaxMSACells:     msa.DefaultMaxCells,
			MaxBatchPairs:   1000,
			MaxMSASequences: 200,
		},
		Defaults: DefaultsConfig{
			Mode:      alignment.Local.String(),
			Match:     dna.MatchScore,
			Mismatch:  dna.MismatchPenalty,
			GapOpen:   dna.GapOpenPenalty,
			GapExtend: dna.GapExtendPenalty,
		},
		Log: LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Load reads path over Default and validates the result. The format is
// chosen by extension: .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q (use .yaml, .yml or .toml)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field constraints and that the default scheme can be
// built.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	_, err := c.Scheme()
	return err
}

// Mode returns the configured default alignment mode.
func (c *Config) Mode() (alignment.Mode, error) {
	return alignment.ParseMode(c.Defaults.Mode)
}

// Scheme returns the configured default scoring scheme.
func (c *Config) Scheme() (alignment.Scheme, error) {
	d := c.Defaults
	if d.Matrix != "" {
		m, err := alignment.NamedProteinScheme(d.Matrix)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	s, err := alignment.NewScoringMatrix(d.Match, d.Mismatch, d.GapOpen, d.GapExtend)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Aligner builds an aligner from the defaults and limits.
func (c *Config) Aligner() (*alignment.Aligner, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	scheme, err := c.Scheme()
	if err != nil {
		return nil, err
	}
	return &alignment.Aligner{
		Mode:     mode,
		Scheme:   scheme,
		MaxCells: c.Limits.MaxCells,
		Workers:  c.Limits.Workers,
	}, nil
}
