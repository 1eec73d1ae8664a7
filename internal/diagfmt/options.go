package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses the path exactly as the file was loaded.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a CLI value onto PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста до и после строки с ошибкой
	PathMode    PathMode
	Width       uint8 // максимальная ширина строки исходника, 0 - не ограничено
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// ShortOpts configures the one-line-per-diagnostic format.
type ShortOpts struct {
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode        PathMode
	Max             int // обрезка вывода, не Bag
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}
