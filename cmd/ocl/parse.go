package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ocl/internal/diagfmt"
	"ocl/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ocl",
		Short: "Parse an OCL source file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("semantics", false, "also resolve and type-check, printing scopes, symbols and expression types as JSON")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	withSemantics, err := cmd.Flags().GetBool("semantics")
	if err != nil {
		return fmt.Errorf("failed to get semantics flag: %w", err)
	}

	cc, err := loadContext(cmd, filePath)
	if err != nil {
		return err
	}
	opts, err := cc.driverOptions()
	if err != nil {
		return err
	}
	if !withSemantics {
		opts.StopAfter = driver.StageParse
	}

	result, err := driver.AnalyzeFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cc.stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     cc.useColor(cc.stderr),
			Context:   2,
			ShowNotes: true,
		})
	}
	cc.printTimings(result)

	switch {
	case withSemantics:
		err = diagfmt.FormatSemanticsJSON(cc.stdout, &diagfmt.SemanticsInput{
			Builder: result.Builder,
			FileID:  result.ASTFile,
			Symbols: result.Symbols,
			Sema:    result.Sema,
		})
	case format == "json":
		err = diagfmt.FormatASTJSON(cc.stdout, result.Builder, result.ASTFile)
	default:
		err = diagfmt.FormatASTPretty(cc.stdout, result.Builder, result.ASTFile, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
