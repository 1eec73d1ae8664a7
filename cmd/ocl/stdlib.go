package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ocl/internal/symbols"
)

func newStdlibCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdlib [module]",
		Short: "List importable modules and their signatures",
		Long:  "Without arguments lists builtins and every module (built-in and from ocl.toml); with a module name prints its exports.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStdlib,
	}
}

func runStdlib(cmd *cobra.Command, args []string) error {
	cc, err := loadContext(cmd, ".")
	if err != nil {
		return err
	}
	opts, err := cc.driverOptions()
	if err != nil {
		return err
	}
	registry, ok := opts.Imports.(interface {
		symbols.ImportResolver
		Modules() []string
	})
	if !ok {
		return fmt.Errorf("stdlib: import resolver cannot list modules")
	}

	tw := tabwriter.NewWriter(cc.stdout, 0, 4, 2, ' ', 0)
	if len(args) == 1 {
		exports, err := registry.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("stdlib: %w", err)
		}
		writeExports(tw, exports)
		return tw.Flush()
	}

	fmt.Fprintln(tw, "builtins")
	for _, b := range symbols.Builtins() {
		fmt.Fprintf(tw, "  %s\t%s\n", b.Name, b.Signature)
	}
	for _, module := range registry.Modules() {
		exports, err := registry.Resolve(module)
		if err != nil {
			return fmt.Errorf("stdlib: %w", err)
		}
		fmt.Fprintf(tw, "\nimport %s;\n", module)
		writeExports(tw, exports)
	}
	return tw.Flush()
}

func writeExports(w io.Writer, exports []symbols.Export) {
	for _, exp := range exports {
		kind := "fn"
		if exp.IsConstant() {
			kind = "const"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", kind, exp.Name, exp.Signature)
	}
}
