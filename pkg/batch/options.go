package batch

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/esfix/pkg/config"
	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/relint"
)

// Defaults for batch processing.
const (
	// DefaultWaveSize is the number of fixes applied between re-lint
	// calls when a re-lint capability is configured.
	DefaultWaveSize = 10

	// DefaultRelintTimeout bounds one re-lint call. A timed-out re-lint
	// is treated as failed-soft: the run continues with the diagnostics
	// it already has.
	DefaultRelintTimeout = 10 * time.Second

	// DefaultMaxWaves bounds the re-lint loop so a linter that keeps
	// reporting fresh diagnostics cannot spin the processor forever.
	DefaultMaxWaves = 5
)

// Options configures one batch processor.
type Options struct {
	// WaveSize is the number of fixes applied per wave before re-linting.
	WaveSize int

	// RelintTimeout bounds each re-lint call.
	RelintTimeout time.Duration

	// MaxWaves caps the number of re-lint waves per run.
	MaxWaves int

	// DisableSemanticChecks turns off the coarse structural validation
	// layer. The checks are on for a zero Options value.
	DisableSemanticChecks bool

	// Relint, when set, is called between waves to discover fresh
	// diagnostics. The processor runs degraded without it: one pass over
	// the input diagnostics, no mid-batch re-discovery.
	Relint relint.Func

	// Registry resolves rule IDs to fixers. Defaults to fix.DefaultRegistry.
	Registry *fix.Registry

	// Logger receives per-diagnostic progress. When nil, each run picks
	// up the logger attached to its context, or the package default.
	Logger *log.Logger
}

// DefaultOptions returns the standard processing options.
func DefaultOptions() Options {
	return Options{
		WaveSize:      DefaultWaveSize,
		RelintTimeout: DefaultRelintTimeout,
		MaxWaves:      DefaultMaxWaves,
	}
}

// FromConfig builds options from the loaded configuration.
func FromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Batch.WaveSize > 0 {
		opts.WaveSize = cfg.Batch.WaveSize
	}
	if cfg.Batch.RelintTimeoutSeconds > 0 {
		opts.RelintTimeout = cfg.Batch.RelintTimeout()
	}
	opts.DisableSemanticChecks = !cfg.Batch.SemanticChecks
	return opts
}

func (o Options) withDefaults() Options {
	if o.WaveSize <= 0 {
		o.WaveSize = DefaultWaveSize
	}
	if o.RelintTimeout <= 0 {
		o.RelintTimeout = DefaultRelintTimeout
	}
	if o.MaxWaves <= 0 {
		o.MaxWaves = DefaultMaxWaves
	}
	if o.Registry == nil {
		o.Registry = fix.DefaultRegistry
	}
	return o
}
