package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/internal/diag"
	"ocl/internal/project"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.ocl", "")
	writeSource(t, dir, "a.ocl", "")
	writeSource(t, dir, "nested/c.ocl", "")
	writeSource(t, dir, "notes.txt", "")
	writeSource(t, dir, ".ocl-cache/x.ocl", "")

	files, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.ocl"),
		filepath.Join(dir, "b.ocl"),
		filepath.Join(dir, "nested", "c.ocl"),
	}, files)
}

func TestAnalyzeFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "ok.ocl", "void main() {}\n"),
		filepath.Join(dir, "missing.ocl"),
		writeSource(t, dir, "bad.ocl", "void main() { int x = \"s\"; }\n"),
		writeSource(t, dir, "semi.ocl", "int x = 1\n"),
	}

	results, err := AnalyzeFiles(context.Background(), paths, Options{Jobs: 3})
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, filepath.ToSlash(paths[i]), filepath.ToSlash(res.Path))
	}

	assert.Equal(t, 0, results[0].Bag.Len())
	assert.Equal(t, []diag.Code{diag.IOLoadFileError}, codes(results[1].Bag))
	assert.Equal(t, []diag.Code{diag.SemaTypeMismatch}, codes(results[2].Bag))
	assert.Equal(t, []diag.Code{diag.SynExpectSemicolon}, codes(results[3].Bag))
	assert.True(t, HasErrors(results))
	assert.False(t, HasErrors(results[:1]))
}

func TestAnalyzeFilesCanceled(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ocl", "void main() {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeFiles(ctx, []string{path, path}, Options{Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeFilesEmpty(t *testing.T) {
	results, err := AnalyzeFiles(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	dir := t.TempDir()
	path := writeSource(t, dir, "main.ocl", "void main() {\n  int a = 1\n  zz;\n}\n")
	opts := Options{Cache: cache, Fingerprint: project.Default().Fingerprint()}

	first, err := AnalyzeFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.Equal(t, []diag.Code{diag.SynExpectSemicolon, diag.SemaUnresolvedSymbol}, codes(first.Bag))

	second, err := AnalyzeFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Nil(t, second.Builder)
	require.Equal(t, codes(first.Bag), codes(second.Bag))
	for i, d := range second.Bag.Items() {
		want := first.Bag.Items()[i]
		assert.Equal(t, want.Message, d.Message)
		assert.Equal(t, want.Primary, d.Primary)
		assert.Equal(t, want.Notes, d.Notes)
		assert.Equal(t, len(want.Fixes), len(d.Fixes))
	}

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestDiskCacheKeyIncludesFingerprint(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	path := writeSource(t, t.TempDir(), "main.ocl", "void main() {}\n")

	cfg := project.Default()
	_, err = AnalyzeFile(context.Background(), path, Options{Cache: cache, Fingerprint: cfg.Fingerprint()})
	require.NoError(t, err)

	cfg.Analysis.MaxTokenLen = 8
	res, err := AnalyzeFile(context.Background(), path, Options{Cache: cache, Fingerprint: cfg.Fingerprint()})
	require.NoError(t, err)
	assert.False(t, res.Cached)

	// частичные прогоны кэш не трогают
	res, err = AnalyzeFile(context.Background(), path, Options{Cache: cache, StopAfter: StageParse})
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestDiskCacheFiltersApplyAfterRestore(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	path := writeSource(t, t.TempDir(), "dup.ocl", "import math;\nimport math;\n")

	_, err = AnalyzeFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)

	res, err := AnalyzeFile(context.Background(), path, Options{Cache: cache, WarningsAsErrors: true})
	require.NoError(t, err)
	require.True(t, res.Cached)
	assert.True(t, res.Bag.HasErrors())

	res, err = AnalyzeFile(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	require.True(t, res.Cached)
	assert.False(t, res.Bag.HasErrors())
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	key := project.Digest{1}
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Path: "x"}))

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "x", out.Path)

	require.NoError(t, cache.DropAll())
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestOpenDiskCacheRejectsEmptyDir(t *testing.T) {
	_, err := OpenDiskCache("")
	require.Error(t, err)
}
