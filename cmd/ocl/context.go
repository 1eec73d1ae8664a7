package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ocl/internal/driver"
	"ocl/internal/project"
)

// cliContext is the per-command view of configuration: defaults, then
// ocl.toml, then .env and OCL_* variables, then explicit flags.
type cliContext struct {
	cfg     *project.Config
	logger  *slog.Logger
	quiet   bool
	timings bool
	stdout  io.Writer
	stderr  io.Writer
}

func loadContext(cmd *cobra.Command, target string) (*cliContext, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg *project.Config
	if configPath != "" {
		cfg, err = project.Load(configPath)
	} else {
		cfg, err = project.Discover(startDir(target))
		if errors.Is(err, project.ErrNoConfig) {
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}

	envDir := cfg.Root
	if envDir == "" {
		envDir = "."
	}
	if err := project.LoadEnvFile(filepath.Join(envDir, ".env")); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Analysis.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("color") {
		color, _ := flags.GetString("color")
		cfg.Color = strings.ToLower(color)
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		cfg.LogLevel = strings.ToLower(level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded",
		"config", cfg.Path,
		"max_diagnostics", cfg.Analysis.MaxDiagnostics,
		"jobs", cfg.Analysis.Jobs,
		"modules", len(cfg.Modules))

	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	return &cliContext{
		cfg:     cfg,
		logger:  logger,
		quiet:   quiet,
		timings: timings,
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	}, nil
}

func startDir(target string) string {
	if target == "" {
		return "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// driverOptions turns the context into driver options.
func (c *cliContext) driverOptions() (driver.Options, error) {
	opts, err := driver.OptionsFromConfig(c.cfg)
	if err != nil {
		return driver.Options{}, err
	}
	opts.Logger = c.logger
	opts.EnableTimings = c.timings
	return opts, nil
}

// useColor resolves auto against w being a terminal.
func (c *cliContext) useColor(w io.Writer) bool {
	switch c.cfg.Color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func (c *cliContext) printTimings(res *driver.Result) {
	if !c.timings || res == nil || res.Timings == nil {
		return
	}
	fmt.Fprint(c.stderr, res.Timings.Summary(res.Path))
}
