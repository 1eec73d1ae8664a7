package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"ocl/internal/diag"
	"ocl/internal/source"
)

var errPreviewNoFile = errors.New("fix preview: file not available")

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview renders the lines touched by edit before and after the
// edit is applied.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errPreviewNoFile
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("%w: id %d", errPreviewNoFile, edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	endLine := max(endPos.Line, startPos.Line)

	contentLen, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixEditPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockStart := lineStartOffset(file, startPos.Line, contentLen)
	blockEnd := min(max(lineEndOffset(file, endLine, contentLen), blockStart), contentLen)

	original := file.Content[blockStart:blockEnd]
	relStart := int(edit.Span.Start) - int(blockStart)
	relEnd := int(edit.Span.End) - int(blockStart)
	if relStart < 0 || relEnd < relStart || relEnd > len(original) {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range for preview block", edit.Span)
	}

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line, contentLen uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line) - 2; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen
}

// lineEndOffset включает завершающий '\n'.
func lineEndOffset(f *source.File, line, contentLen uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line) - 1; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen
}
