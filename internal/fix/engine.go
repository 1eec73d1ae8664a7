package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"ocl/internal/diag"
	"ocl/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates разворачивает fixes всех диагностик в плоский список.
// Fix без правок или с повторяющимся ID попадает в skipped; пустой ID
// синтезируется из кода и позиции диагностики.
func gatherCandidates(diagnostics []*diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	seen := make(map[string]struct{})

	order := 0
	for _, d := range diagnostics {
		if d == nil {
			continue
		}
		for idx, fp := range d.Fixes {
			if fp == nil {
				continue
			}
			f := *fp
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates: файл, начало и конец span, порядок появления,
// затем preferred-first, ID и Title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag.Primary, candidates[j].diag.Primary
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Start != dj.Start {
			return di.Start < dj.Start
		}
		if di.End != dj.End {
			return di.End < dj.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		var skipped []SkippedFix
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return []candidate{cand}, nil
			}
		}
		return []candidate{candidates[0]}, nil
	default:
		return nil, nil
	}
}

// workspace holds the rewritten buffers of every touched file. A fix is
// staged against a copy first and committed only if all of its edits apply.
type workspace struct {
	fs      *source.FileSet
	dryRun  bool
	buffers map[source.FileID][]byte
	applied map[source.FileID][]diag.TextEdit // отсортированы по Span.Start
	counts  map[source.FileID]int
}

type stagedFile struct {
	buf   []byte
	edits []diag.TextEdit
	count int
}

func newWorkspace(fs *source.FileSet, dryRun bool) *workspace {
	return &workspace{
		fs:      fs,
		dryRun:  dryRun,
		buffers: make(map[source.FileID][]byte),
		applied: make(map[source.FileID][]diag.TextEdit),
		counts:  make(map[source.FileID]int),
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	ws := newWorkspace(fs, dryRun)
	var applied []AppliedFix
	var skipped []SkippedFix

	for _, cand := range selected {
		staged, reason := ws.stage(cand.fix.Edits)
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason})
			continue
		}
		total := 0
		for fileID, sf := range staged {
			ws.buffers[fileID] = sf.buf
			ws.applied[fileID] = sf.edits
			ws.counts[fileID] += sf.count
			total += sf.count
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     total,
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}
	changes, err := ws.flush()
	return applied, skipped, changes, err
}

// stage applies edits to private copies of the affected buffers. A non-empty
// reason means the whole fix is rejected and nothing was committed.
func (ws *workspace) stage(edits []diag.TextEdit) (map[source.FileID]stagedFile, string) {
	staged := make(map[source.FileID]stagedFile)
	for fileID, fileEdits := range groupEditsByFile(edits) {
		file := ws.fs.Get(fileID)
		switch {
		case file == nil:
			return nil, "unknown file"
		case file.Flags&source.FileVirtual != 0 && !ws.dryRun:
			return nil, "target file is virtual"
		case conflictsWithExisting(ws.applied[fileID], fileEdits):
			return nil, fmt.Sprintf("conflicts with previously applied edits in %s", file.DisplayPath("relative", ws.fs.BaseDir()))
		}

		base, ok := ws.buffers[fileID]
		if !ok {
			base = file.Content
		}
		buf, done, reason := spliceEdits(base, ws.applied[fileID], fileEdits)
		if reason != "" {
			return nil, reason
		}
		staged[fileID] = stagedFile{buf: buf, edits: done, count: len(fileEdits)}
	}
	return staged, ""
}

// spliceEdits переносит edits из координат исходного файла в координаты
// уже изменённого буфера (через prior) и применяет их с конца к началу.
func spliceEdits(base []byte, prior, edits []diag.TextEdit) ([]byte, []diag.TextEdit, string) {
	working := append([]byte(nil), base...)
	done := append([]diag.TextEdit(nil), prior...)
	ordered := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Span.Start == ordered[j].Span.Start {
			return ordered[i].Span.End > ordered[j].Span.End
		}
		return ordered[i].Span.Start > ordered[j].Span.Start
	})

	for _, edit := range ordered {
		start := int(edit.Span.Start) + cumulativeDelta(done, int(edit.Span.Start))
		end := int(edit.Span.End) + cumulativeDelta(done, int(edit.Span.End))
		if start < 0 || end < start || end > len(working) {
			return nil, nil, "edit span out of range"
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return nil, nil, "existing text does not match expected content"
		}
		out := make([]byte, 0, len(working)-(end-start)+len(edit.NewText))
		out = append(out, working[:start]...)
		out = append(out, edit.NewText...)
		working = append(out, working[end:]...)
		done = insertEditSorted(done, edit)
	}
	return working, done, ""
}

// flush writes committed buffers (unless dry-run) and reports them sorted by path.
func (ws *workspace) flush() ([]FileChange, error) {
	changes := make([]FileChange, 0, len(ws.buffers))
	for fileID, buf := range ws.buffers {
		file := ws.fs.Get(fileID)
		if !ws.dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, buf, mode); err != nil {
				return changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, FileChange{
			Path:      file.DisplayPath("relative", ws.fs.BaseDir()),
			EditCount: ws.counts[fileID],
			Content:   buf,
		})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes, nil
}

func conflictsWithExisting(existing []diag.TextEdit, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are half-open; two insertions never conflict, an insertion
// conflicts with a span that strictly contains its position.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

func cumulativeDelta(edits []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		eStart := int(e.Span.Start)
		if eStart > pos {
			break
		}
		eEnd := int(e.Span.End)
		if eEnd <= pos {
			delta += len(e.NewText) - (eEnd - eStart)
		}
	}
	return delta
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	insertIdx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[insertIdx+1:], edits[insertIdx:])
	edits[insertIdx] = edit
	return edits
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.DisplayPath("relative", fs.BaseDir())
}
