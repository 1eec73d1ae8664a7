package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	require.True(t, opts.Enabled())

	s, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, path := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.out")
	_, err := Start(Options{CPU: missing})
	require.Error(t, err)

	// CPU profiling must have been released so a new session can start.
	s, err := Start(Options{CPU: filepath.Join(t.TempDir(), "cpu.out")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Stop())
	assert.False(t, Options{}.Enabled())
}
