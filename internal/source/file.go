package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// Line возвращает строку с номером lineNum (1-based) без перевода строки.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	start, end, ok := f.lineBounds(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) lineBounds(lineNum uint32) (start, end uint32, ok bool) {
	lines := uint32(len(f.LineIdx)) + 1
	if lineNum > lines {
		return 0, 0, false
	}
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	if lineNum-1 < uint32(len(f.LineIdx)) {
		end = f.LineIdx[lineNum-1]
	} else {
		end = uint32(len(f.Content))
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

// LineCount returns the number of lines, counting a trailing partial line.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1
}
