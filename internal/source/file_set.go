package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans to positions.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0, 4),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.baseDir = dir
}

// BaseDir возвращает базовую директорию; по умолчанию текущую рабочую.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// A path added twice gets a new FileID; the index points at the latest one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	norm := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    norm,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[norm] = id
	return id
}

// Load reads a file from disk, strips BOM, normalizes CRLF and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.AddNormalized(path, content, 0), nil
}

// AddNormalized strips BOM and CRLF before Add; flags record what was changed.
func (fs *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.AddNormalized(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID, or nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Len returns the number of stored files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Position is Resolve for the start of the span only.
func (fs *FileSet) Position(span Span) LineCol {
	start, _ := fs.Resolve(span)
	return start
}
