package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Переменные окружения, перекрывающие ocl.toml.
const (
	EnvMaxDiagnostics = "OCL_MAX_DIAGNOSTICS"
	EnvJobs           = "OCL_JOBS"
	EnvLogLevel       = "OCL_LOG_LEVEL"
	EnvColor          = "OCL_COLOR"
)

// LoadEnvFile loads KEY=VALUE pairs from envfile into the process
// environment. Variables that are already set win. A missing file is not an error.
func LoadEnvFile(envfile string) error {
	if envfile == "" {
		envfile = ".env"
	}
	err := godotenv.Load(envfile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envfile, err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	if v, ok := lookupTrimmed(lookup, EnvMaxDiagnostics); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMaxDiagnostics, err))
		} else {
			c.Analysis.MaxDiagnostics = n
		}
	}
	if v, ok := lookupTrimmed(lookup, EnvJobs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvJobs, err))
		} else {
			c.Analysis.Jobs = n
		}
	}
	if v, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookupTrimmed(lookup, EnvColor); ok {
		c.Color = strings.ToLower(v)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return c.Validate()
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
