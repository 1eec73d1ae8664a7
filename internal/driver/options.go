package driver

import (
	"fmt"
	"log/slog"

	"ocl/internal/project"
	"ocl/internal/stdlib"
	"ocl/internal/symbols"
)

// Options configures one analysis run.
type Options struct {
	// StopAfter limits the pipeline; empty means run every stage.
	StopAfter        Stage
	MaxDiagnostics   int
	MaxTokenLen      int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Jobs bounds AnalyzeFiles parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Imports resolves `import` names; nil means the built-in modules.
	Imports symbols.ImportResolver
	Prelude []symbols.PreludeEntry

	// Cache is consulted only for full runs.
	Cache       *DiskCache
	Fingerprint project.Digest

	Progress ProgressSink
	Logger   *slog.Logger
}

// OptionsFromConfig maps a project configuration onto driver options.
// User modules from [modules.*] extend the built-in registry.
func OptionsFromConfig(cfg *project.Config) (Options, error) {
	if cfg == nil {
		cfg = project.Default()
	}
	registry := stdlib.Default()
	if len(cfg.Modules) > 0 {
		var err error
		registry, err = registry.With(cfg.Modules)
		if err != nil {
			return Options{}, fmt.Errorf("user modules: %w", err)
		}
	}
	return Options{
		MaxDiagnostics: cfg.Analysis.MaxDiagnostics,
		MaxTokenLen:    cfg.Analysis.MaxTokenLen,
		Jobs:           cfg.Analysis.Jobs,
		Imports:        registry,
		Fingerprint:    cfg.Fingerprint(),
	}, nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o *Options) imports() symbols.ImportResolver {
	if o.Imports == nil {
		return stdlib.Default()
	}
	return o.Imports
}

// reaches reports whether the run continues through stage s.
func (o *Options) reaches(s Stage) bool {
	if o.StopAfter == "" {
		return true
	}
	return stageRank(s) <= stageRank(o.StopAfter)
}

func stageRank(s Stage) int {
	switch s {
	case StageLoad:
		return 0
	case StageLex:
		return 1
	case StageParse:
		return 2
	case StageResolve:
		return 3
	default:
		return 4
	}
}
