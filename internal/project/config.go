package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ocl/internal/lexer"
	"ocl/internal/symbols"
)

// ErrNoConfig is returned by Discover when no ocl.toml exists above the start directory.
var ErrNoConfig = errors.New("no " + ConfigFileName + " found")

const (
	// DefaultMaxDiagnostics caps the diagnostic bag of a single file.
	DefaultMaxDiagnostics = 200
	defaultCacheDir       = ".ocl-cache"
)

// Analysis tunes the front-end pipeline.
type Analysis struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
	MaxTokenLen    int `toml:"max_token_len"`
}

// Cache configures the on-disk diagnostics cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Config is the merged project configuration: defaults, then ocl.toml,
// then environment.
type Config struct {
	// Path to the ocl.toml the config was read from; empty for defaults.
	Path     string
	Root     string
	Analysis Analysis
	Cache    Cache
	// Modules holds user import modules, export order as written in the file.
	Modules  map[string][]symbols.Export
	LogLevel string
	Color    string
}

type configFile struct {
	Analysis Analysis                     `toml:"analysis"`
	Cache    Cache                        `toml:"cache"`
	Modules  map[string]map[string]string `toml:"modules"`
}

// Default returns the configuration used when no ocl.toml is present.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			MaxDiagnostics: DefaultMaxDiagnostics,
			Jobs:           0,
			MaxTokenLen:    lexer.DefaultMaxTokenLen,
		},
		Cache:    Cache{Dir: defaultCacheDir},
		LogLevel: "warn",
		Color:    "auto",
	}
}

// Load reads an ocl.toml file on top of Default.
func Load(path string) (*Config, error) {
	var raw configFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	cfg := Default()
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if meta.IsDefined("analysis", "max_diagnostics") {
		cfg.Analysis.MaxDiagnostics = raw.Analysis.MaxDiagnostics
	}
	if meta.IsDefined("analysis", "jobs") {
		cfg.Analysis.Jobs = raw.Analysis.Jobs
	}
	if meta.IsDefined("analysis", "max_token_len") {
		cfg.Analysis.MaxTokenLen = raw.Analysis.MaxTokenLen
	}
	if meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = raw.Cache.Enabled
	}
	if dir := strings.TrimSpace(raw.Cache.Dir); dir != "" {
		cfg.Cache.Dir = dir
	}

	cfg.Modules, err = collectModules(meta, raw.Modules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds ocl.toml above startDir and loads it. ErrNoConfig is
// returned together with the defaults when the file is absent.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), ErrNoConfig
	}
	return Load(path)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Analysis.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("analysis.max_diagnostics must be >= 0, got %d", c.Analysis.MaxDiagnostics))
	}
	if c.Analysis.Jobs < 0 {
		errs = append(errs, fmt.Errorf("analysis.jobs must be >= 0, got %d", c.Analysis.Jobs))
	}
	if c.Analysis.MaxTokenLen < 0 {
		errs = append(errs, fmt.Errorf("analysis.max_token_len must be >= 0, got %d", c.Analysis.MaxTokenLen))
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("color must be auto, on or off, got %q", c.Color))
	}
	return errors.Join(errs...)
}

// CacheDir resolves the cache directory against the project root.
func (c *Config) CacheDir() string {
	dir := c.Cache.Dir
	if dir == "" {
		dir = defaultCacheDir
	}
	if filepath.IsAbs(dir) || c.Root == "" {
		return dir
	}
	return filepath.Join(c.Root, dir)
}
