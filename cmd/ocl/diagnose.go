package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ocl/internal/diag"
	"ocl/internal/diagfmt"
	"ocl/internal/driver"
	"ocl/internal/ui"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.ocl|directory>",
		Short: "Run diagnostics on an OCL source file or directory",
		Long:  `Run diagnostics to find lexical, syntax, resolution and type errors in OCL source files or all *.ocl files within a directory`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0 = from config, then auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("preview", false, "show a before/after preview for each fix")
	cmd.Flags().Int("context", 0, "source lines of context around each excerpt")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("disk-cache", false, "reuse diagnostics from the on-disk cache")
	cmd.Flags().String("ui", "auto", "show a progress UI for directories (auto|on|off)")
	return cmd
}

type diagFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	withNotes        bool
	suggest          bool
	preview          bool
	context          int
	pathMode         diagfmt.PathMode
	diskCache        bool
	ui               uiMode
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var (
		f   diagFlags
		err error
	)
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = flags.GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = flags.GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.context, err = flags.GetInt("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	if f.context < 0 || f.context > 127 {
		return f, fmt.Errorf("--context must be between 0 and 127, got %d", f.context)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return f, fmt.Errorf("unknown path mode: %s", pathMode)
	}
	if f.diskCache, err = flags.GetBool("disk-cache"); err != nil {
		return f, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	return f, nil
}

// runDiagnose analyses a file or every *.ocl file of a directory, renders the
// diagnostics and fails with errDiagnostics when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]
	f, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	files := []string{target}
	if info.IsDir() {
		if files, err = driver.ListFiles(target); err != nil {
			return fmt.Errorf("diag: %w", err)
		}
	}

	cc, err := loadContext(cmd, target)
	if err != nil {
		return err
	}
	opts, err := cc.driverOptions()
	if err != nil {
		return err
	}
	opts.IgnoreWarnings = f.noWarnings
	opts.WarningsAsErrors = f.warningsAsErrors
	if f.jobs > 0 {
		opts.Jobs = f.jobs
	}
	if f.diskCache || cc.cfg.Cache.Enabled {
		if opts.Cache, err = driver.OpenDiskCache(cc.cfg.CacheDir()); err != nil {
			return err
		}
	}

	showUI := info.IsDir() && !cc.quiet && f.format == "pretty" && shouldUseTUI(f.ui, cc.stderr)
	results, err := analyzeWithUI(cmd.Context(), files, opts, showUI, cc)
	if err != nil {
		return err
	}

	if err := renderResults(cc, results, f); err != nil {
		return err
	}
	for _, res := range results {
		cc.printTimings(res)
	}
	if driver.HasErrors(results) {
		return errDiagnostics
	}
	return nil
}

func analyzeWithUI(ctx context.Context, files []string, opts driver.Options, showUI bool, cc *cliContext) ([]*driver.Result, error) {
	if !showUI {
		return driver.AnalyzeFiles(ctx, files, opts)
	}
	events := make(chan driver.Event, len(files))
	opts.Progress = driver.ChannelSink{Ch: events}
	uiDone := make(chan error, 1)
	go func() {
		err := ui.Run(cc.stderr, "ocl diag", files, events)
		// если UI упал раньше времени, воркеры не должны заблокироваться
		for range events {
		}
		uiDone <- err
	}()
	results, err := driver.AnalyzeFiles(ctx, files, opts)
	close(events)
	if uiErr := <-uiDone; uiErr != nil {
		cc.logger.Warn("progress UI failed", "err", uiErr)
	}
	return results, err
}

func renderResults(cc *cliContext, results []*driver.Result, f diagFlags) error {
	switch f.format {
	case "json":
		combined := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
		for _, res := range results {
			out := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				PathMode:        f.pathMode,
				IncludeFixes:    f.suggest,
				IncludePreviews: f.preview,
			})
			combined.Diagnostics = append(combined.Diagnostics, out.Diagnostics...)
		}
		combined.Count = len(combined.Diagnostics)
		return diagfmt.EncodeJSON(cc.stdout, combined)
	case "short":
		for _, res := range results {
			diagfmt.Short(cc.stdout, res.Bag, res.FileSet, diagfmt.ShortOpts{
				PathMode:  f.pathMode,
				ShowNotes: f.withNotes,
			})
		}
	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:       cc.useColor(cc.stdout),
			Context:     int8(f.context),
			PathMode:    f.pathMode,
			ShowNotes:   f.withNotes,
			ShowFixes:   f.suggest,
			ShowPreview: f.preview,
		}
		for _, res := range results {
			diagfmt.Pretty(cc.stdout, res.Bag, res.FileSet, prettyOpts)
		}
	}
	if !cc.quiet {
		printSummary(cc, results)
	}
	return nil
}

func printSummary(cc *cliContext, results []*driver.Result) {
	var errs, warns, cached int
	for _, res := range results {
		for _, d := range res.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
		if res.Cached {
			cached++
		}
	}
	line := fmt.Sprintf("%d file(s): %d error(s), %d warning(s)", len(results), errs, warns)
	if cached > 0 {
		line += fmt.Sprintf(", %d from cache", cached)
	}
	fmt.Fprintln(cc.stderr, line)
}
