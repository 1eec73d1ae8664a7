package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the ocl CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colorized renders Version with major, minor and patch in separate colours.
// Anything that is not "X.Y.Z[suffix]" is returned unchanged.
func Colorized() string {
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	patch, suffix := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, suffix = patch[:i], patch[i:]
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

// Info is the full `ocl version` line.
func Info() string {
	out := "ocl " + Colorized()
	var extra []string
	if GitCommit != "" {
		extra = append(extra, "commit "+GitCommit)
	}
	if BuildDate != "" {
		extra = append(extra, "built "+BuildDate)
	}
	if len(extra) > 0 {
		out += fmt.Sprintf(" (%s)", strings.Join(extra, ", "))
	}
	return out
}
