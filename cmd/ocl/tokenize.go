package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ocl/internal/diagfmt"
	"ocl/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ocl",
		Short: "Tokenize an OCL source file",
		Long:  `Tokenize breaks down an OCL source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	cc, err := loadContext(cmd, filePath)
	if err != nil {
		return err
	}
	opts, err := cc.driverOptions()
	if err != nil {
		return err
	}
	opts.StopAfter = driver.StageLex

	result, err := driver.AnalyzeFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cc.stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   cc.useColor(cc.stderr),
			Context: 2,
		})
	}
	cc.printTimings(result)

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cc.stdout, result.Tokens, result.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(cc.stdout, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
