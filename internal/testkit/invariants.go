package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ocl/internal/ast"
	"ocl/internal/diag"
	"ocl/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span stays within file content bounds
// 2) every item span is non-empty and fully contained in file.Span
// 3) file.Span covers the union of item spans (if any items exist)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End < f.Span.Start || f.Span.End > lenContent {
		return fmt.Errorf("file span %v is outside content [0,%d)", f.Span, lenContent)
	}

	var union source.Span
	var haveItem bool
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveItem && (union.Start < f.Span.Start || union.End > f.Span.End) {
		return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
	}
	return nil
}

// CheckDiagnostics verifies what every finalized bag must guarantee: items
// ordered by (file, start offset), no two items sharing code and primary span,
// every primary span inside its file.
func CheckDiagnostics(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		return fmt.Errorf("nil bag")
	}
	type key struct {
		code       diag.Code
		start, end uint32
		file       source.FileID
	}
	seen := make(map[key]struct{}, bag.Len())
	var prev *diag.Diagnostic
	for i, d := range bag.Items() {
		if d == nil {
			return fmt.Errorf("nil diagnostic at %d", i)
		}
		sp := d.Primary
		if prev != nil {
			pp := prev.Primary
			if sp.File < pp.File || (sp.File == pp.File && sp.Start < pp.Start) {
				return fmt.Errorf("diagnostic %d (%s at %v) sorts before previous %v", i, d.Code.ID(), sp, pp)
			}
		}
		k := key{code: d.Code, start: sp.Start, end: sp.End, file: sp.File}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate diagnostic %s at %v", d.Code.ID(), sp)
		}
		seen[k] = struct{}{}
		if sp.End < sp.Start {
			return fmt.Errorf("inverted span %v for %s", sp, d.Code.ID())
		}
		if fs != nil {
			if f := fs.Get(sp.File); f != nil && int(sp.End) > len(f.Content) {
				return fmt.Errorf("span %v for %s past end of %s", sp, d.Code.ID(), f.Path)
			}
		}
		prev = d
	}
	return nil
}
