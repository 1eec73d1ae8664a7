package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ocl/internal/diag"
	"ocl/internal/driver"
	"ocl/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.ocl>",
		Short: "Apply available fixes to a source file",
		Long:  "Run diagnostics, surface available fixes, and apply them according to the chosen strategy.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply all safe fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "print the fixed source instead of writing the file")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	cc, err := loadContext(cmd, targetPath)
	if err != nil {
		return err
	}
	opts, err := cc.driverOptions()
	if err != nil {
		return err
	}
	result, err := driver.AnalyzeFile(cmd.Context(), targetPath, opts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	cc.printTimings(result)

	var diagnostics []*diag.Diagnostic
	diagnostics = append(diagnostics, result.Bag.Items()...)
	res, applyErr := fix.Apply(result.FileSet, diagnostics, fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	})
	if err := reportApplyResult(cc.stdout, res, applyErr); err != nil {
		return err
	}
	if dryRun && res != nil {
		for _, change := range res.FileChanges {
			if _, err := fmt.Fprintf(cc.stdout, "--- %s (dry run)\n%s", change.Path, change.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

func reportApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			_, err := fmt.Fprintln(out, "No applicable fixes found.")
			return err
		}
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(out, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		_, err := fmt.Fprintln(out, "No fixes applied.")
		return err
	}
	return nil
}
