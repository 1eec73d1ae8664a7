package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		out = append(out, content[i])
	}
	return out, len(out) != len(content)
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: количество переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to base, or the normalized path when
// it lies outside base.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(path), nil
	}
	return normalizePath(rel), nil
}

// DisplayPath форматирует путь файла для вывода: "relative", "absolute", "basename".
func (f *File) DisplayPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "relative":
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	}
	return f.Path
}
