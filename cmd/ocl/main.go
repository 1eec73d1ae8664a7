package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ocl/internal/prof"
	"ocl/internal/version"
)

// errDiagnostics signals that analysis reported errors; the message has
// already been rendered, so main only sets the exit code.
var errDiagnostics = errors.New("diagnostics contain errors")

var (
	rootCmd        = newRootCmd()
	profileSession *prof.Session
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ocl",
		Short:         "OCL front-end: tokenize, parse and diagnose OCL programs",
		Long:          `ocl runs the lexer, parser, scope resolver and type checker over OCL sources and reports diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return startProfiling(cmd)
		},
	}

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newDiagCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newStdlibCmd())
	cmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("config", "", "path to ocl.toml (default: search upward from the target)")
	cmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given file")
	cmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given file")
	return cmd
}

func main() {
	err := rootCmd.Execute()
	if stopErr := profileSession.Stop(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "warning: profiling:", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// startProfiling inspects the persistent profiling flags; main stops the
// session after the command returns, whatever its outcome.
func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	profileSession, err = prof.Start(opts)
	return err
}
