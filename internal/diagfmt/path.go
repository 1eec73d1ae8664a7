package diagfmt

import (
	"ocl/internal/source"
)

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil {
		return "<unknown>"
	}
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	if mode == PathModeAuto {
		return f.Path
	}
	return f.DisplayPath(mode.String(), fs.BaseDir())
}
