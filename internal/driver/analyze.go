package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/lexer"
	"ocl/internal/observ"
	"ocl/internal/parser"
	"ocl/internal/sema"
	"ocl/internal/source"
	"ocl/internal/symbols"
	"ocl/internal/token"
)

// ErrNilSource is returned by Analyze when content is nil. An empty slice is
// a valid (empty) program.
var ErrNilSource = errors.New("nil source content")

// Result holds everything produced for one file. Builder, Symbols and Sema
// stay nil for stages that did not run or when Cached is set.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	ASTFile ast.FileID
	Bag     *diag.Bag
	Tokens  []token.Token
	Builder *ast.Builder
	Symbols *symbols.Result
	Sema    *sema.Result
	Timings *observ.Report
	Cached  bool
}

// Analyze runs the pipeline over in-memory content registered under name.
func Analyze(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	if content == nil {
		return nil, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return run(fs, fileID, &opts, nil), nil
}

// AnalyzeFile loads path from disk and analyses it. IO failures are returned
// as errors; use AnalyzeFiles to turn them into diagnostics.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	idx := timer.Begin(string(StageLoad))
	fileID, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return run(fs, fileID, &opts, timer), nil
}

func run(fs *source.FileSet, fileID source.FileID, opts *Options, timer *observ.Timer) *Result {
	if timer == nil && opts.EnableTimings {
		timer = observ.NewTimer()
	}
	file := fs.Get(fileID)
	log := opts.logger().With("file", file.Path)
	res := &Result{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	reporter := &diag.BagReporter{Bag: res.Bag}

	phase := func(stage Stage, fn func() string) {
		emit(opts.Progress, Event{File: res.Path, Stage: stage, Status: StatusWorking})
		start := time.Now()
		idx := timer.Begin(string(stage))
		note := fn()
		timer.End(idx, note)
		log.Debug("phase done",
			"phase", string(stage),
			"diagnostics", res.Bag.Len(),
			"duration", time.Since(start))
	}

	key, useCache := cacheKey(file, opts)
	if useCache {
		if payload, ok := lookupCache(opts.Cache, key, log); ok {
			res.Bag = payload.restore(fileID, opts.MaxDiagnostics)
			res.Cached = true
			finish(res, opts, timer)
			emit(opts.Progress, Event{File: res.Path, Status: StatusCached})
			return res
		}
	}

	if opts.StopAfter == StageLex {
		phase(StageLex, func() string {
			lx := lexer.New(file, lexer.Options{Reporter: reporter, MaxTokenLen: opts.MaxTokenLen})
			for {
				tok := lx.Next()
				res.Tokens = append(res.Tokens, tok)
				if tok.Kind == token.EOF {
					break
				}
			}
			return fmt.Sprintf("tokens=%d", len(res.Tokens))
		})
		finish(res, opts, timer)
		return res
	}

	phase(StageParse, func() string {
		maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
		if err != nil {
			maxErrors = 0
		}
		res.Builder = ast.NewBuilder(ast.Hints{}, nil)
		lx := lexer.New(file, lexer.Options{Reporter: reporter, MaxTokenLen: opts.MaxTokenLen})
		parsed := parser.ParseFile(fs, lx, res.Builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
		res.ASTFile = parsed.File
		if node := res.Builder.Files.Get(parsed.File); node != nil {
			return fmt.Sprintf("items=%d", len(node.Items))
		}
		return ""
	})

	if opts.reaches(StageResolve) {
		phase(StageResolve, func() string {
			syms := symbols.ResolveFile(res.Builder, res.ASTFile, symbols.ResolveOptions{
				Reporter: reporter,
				Imports:  opts.imports(),
				Prelude:  opts.Prelude,
				Validate: true,
			})
			res.Symbols = &syms
			return fmt.Sprintf("symbols=%d", syms.Table.Symbols.Len())
		})
	}

	if opts.reaches(StageCheck) {
		phase(StageCheck, func() string {
			checked := sema.Check(res.Builder, res.ASTFile, sema.Options{Reporter: reporter, Symbols: res.Symbols})
			res.Sema = &checked
			return fmt.Sprintf("exprs=%d", len(checked.ExprTypes))
		})
	}

	res.Bag.Finalize()
	if useCache {
		storeCache(opts.Cache, key, newCachePayload(res.Path, res.Bag), log)
	}
	finish(res, opts, timer)

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: res.Path, Status: status})
	return res
}

// finish applies severity filters and attaches timings.
func finish(res *Result, opts *Options, timer *observ.Timer) {
	res.Bag.Finalize()
	if opts.IgnoreWarnings {
		res.Bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity == diag.SevError
		})
	}
	if opts.WarningsAsErrors {
		res.Bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
	if timer != nil {
		report := timer.Report()
		res.Timings = &report
	}
}
