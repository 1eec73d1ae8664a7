package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func withoutColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColorizedPlain(t *testing.T) {
	withoutColor(t)
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, "", "")
		if got := Colorized(); got != tt.want {
			t.Errorf("Colorized(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestColorizedAddsEscapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	withVersion(t, "1.2.3", "", "")
	if got := Colorized(); got == "1.2.3" {
		t.Errorf("expected ANSI escapes, got %q", got)
	}
}

func TestInfo(t *testing.T) {
	withoutColor(t)
	tests := []struct {
		commit, date string
		want         string
	}{
		{"", "", "ocl 1.0.0"},
		{"abc123", "", "ocl 1.0.0 (commit abc123)"},
		{"abc123", "2024-01-15", "ocl 1.0.0 (commit abc123, built 2024-01-15)"},
		{"", "2024-01-15", "ocl 1.0.0 (built 2024-01-15)"},
	}
	for _, tt := range tests {
		withVersion(t, "1.0.0", tt.commit, tt.date)
		if got := Info(); got != tt.want {
			t.Errorf("Info() = %q, want %q", got, tt.want)
		}
	}
}
