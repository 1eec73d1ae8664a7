package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ocl/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show ocl build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		return renderVersionJSON(out)
	case "pretty":
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		switch colorFlag {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		}
		_, err := fmt.Fprintln(out, version.Info())
		return err
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "ocl",
		Version:   version.Version,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	})
}
