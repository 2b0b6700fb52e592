// Package config holds the server settings and reads them from the
// environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/template-match-mcp/internal/logging"
	"github.com/ironsheep/template-match-mcp/internal/peaks"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel      = "TEMPLATE_MCP_LOG_LEVEL"
	EnvLogFormat     = "TEMPLATE_MCP_LOG_FORMAT"
	EnvMaxPeaks      = "TEMPLATE_MCP_MAX_PEAKS"
	EnvMinSeparation = "TEMPLATE_MCP_MIN_SEPARATION"
	EnvMaxIterations = "TEMPLATE_MCP_MAX_ITERATIONS"
	EnvSequential    = "TEMPLATE_MCP_SEQUENTIAL"
)

// Config holds server settings.
type Config struct {
	LogLevel  string `json:"log_level"`  // debug, info, warn, error
	LogFormat string `json:"log_format"` // pretty, text, json

	// Peaks supplies defaults for peak arguments a tool call leaves out.
	Peaks PeakDefaults `json:"peaks"`

	// Sequential computes surfaces on one goroutine.
	Sequential bool `json:"sequential"`
}

// PeakDefaults are the peak extraction settings used when a request does not
// set them.
type PeakDefaults struct {
	MaxCount      int     `json:"max_count"`
	MinSeparation float64 `json:"min_separation"`
	MaxIterations int     `json:"max_iterations"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: logging.FormatPretty,
		Peaks: PeakDefaults{
			MaxCount:      1,
			MinSeparation: 5,
			MaxIterations: peaks.DefaultMaxIterations,
		},
	}
}

// FromEnv starts from Default and applies every variable lookup reports as
// set. Pass os.LookupEnv in production.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvMaxPeaks); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMaxPeaks, err))
		}
		cfg.Peaks.MaxCount = n
	}
	if v, ok := lookup(EnvMinSeparation); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMinSeparation, err))
		}
		cfg.Peaks.MinSeparation = f
	}
	if v, ok := lookup(EnvMaxIterations); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMaxIterations, err))
		}
		cfg.Peaks.MaxIterations = n
	}
	if v, ok := lookup(EnvSequential); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSequential, err))
		}
		cfg.Sequential = b
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.Peaks.MaxCount < 1 {
		errs = append(errs, fmt.Errorf("max peaks %d must be at least 1", c.Peaks.MaxCount))
	}
	if c.Peaks.MinSeparation < 0 || math.IsNaN(c.Peaks.MinSeparation) || math.IsInf(c.Peaks.MinSeparation, 0) {
		errs = append(errs, fmt.Errorf("min separation %v must be finite and non-negative", c.Peaks.MinSeparation))
	}
	if c.Peaks.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max iterations %d is negative", c.Peaks.MaxIterations))
	}
	return errors.Join(errs...)
}

// PeakOptions returns extraction options built from the defaults.
func (p PeakDefaults) PeakOptions() peaks.Options {
	return peaks.Options{
		MaxCount:      p.MaxCount,
		MinSeparation: p.MinSeparation,
		MaxIterations: p.MaxIterations,
	}
}
