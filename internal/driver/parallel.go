package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// SourceExt is the file extension of OCL programs.
const SourceExt = ".ocl"

// ListFiles returns every *.ocl file under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// AnalyzeFiles runs an independent pipeline per path with at most
// opts.Jobs running at once. Results are in input order. A file that fails to
// load yields a result with an IOLoadFileError diagnostic instead of an error;
// the returned error is non-nil only on cancellation.
func AnalyzeFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := opts.logger()
	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// отмена проверяется только между файлами
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := AnalyzeFile(gctx, path, opts)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				res = loadFailure(path, err, &opts)
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	hits, misses := opts.Cache.Stats()
	log.Debug("analysis finished",
		"files", len(paths),
		"load_errors", failed.Load(),
		"jobs", jobs,
		"cache_hits", hits,
		"cache_misses", misses)
	return results, nil
}

func loadFailure(path string, err error, opts *Options) *Result {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, []byte{})
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, err.Error()))
	return &Result{Path: path, FileSet: fs, File: fs.Get(fileID), Bag: bag}
}

// HasErrors reports whether any result carries an error diagnostic.
func HasErrors(results []*Result) bool {
	for _, r := range results {
		if r != nil && r.Bag.HasErrors() {
			return true
		}
	}
	return false
}
