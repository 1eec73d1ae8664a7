package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ocl/internal/diag"
	"ocl/internal/project"
	"ocl/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

var schemaDigest = project.Digest(sha256.Sum256([]byte(fmt.Sprintf("ocl-diagnostics/v%d", diskCacheSchemaVersion))))

// DiskCache хранит финальные диагностики файлов на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string

	hits, misses int
}

// DiskPayload is the serialised result of a full analysis.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Start, End uint32
	Msg        string
}

type cachedFix struct {
	ID            string
	Title         string
	Kind          uint8
	Applicability uint8
	IsPreferred   bool
	Edits         []cachedEdit
}

type cachedEdit struct {
	Start, End uint32
	NewText    string
	OldText    string
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("disk cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("disk cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Stats returns hit and miss counters.
func (c *DiskCache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// два первых символа - подкаталог, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a payload from another schema is a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	hit, err := c.get(key, out)
	c.mu.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
	return hit, err
}

func (c *DiskCache) get(key project.Digest, out *DiskPayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey = H(content || config fingerprint || schema). Partial runs are not cached.
func cacheKey(file *source.File, opts *Options) (project.Digest, bool) {
	if opts.Cache == nil || opts.StopAfter != "" {
		return project.Digest{}, false
	}
	return project.Combine(project.Digest(file.Hash), opts.Fingerprint, schemaDigest), true
}

func lookupCache(c *DiskCache, key project.Digest, log *slog.Logger) (*DiskPayload, bool) {
	var payload DiskPayload
	hit, err := c.Get(key, &payload)
	if err != nil {
		log.Warn("disk cache read failed", "err", err)
		return nil, false
	}
	log.Debug("disk cache lookup", "hit", hit)
	return &payload, hit
}

func storeCache(c *DiskCache, key project.Digest, payload *DiskPayload, log *slog.Logger) {
	if err := c.Put(key, payload); err != nil {
		log.Warn("disk cache write failed", "err", err)
	}
}

func newCachePayload(path string, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		Diagnostics: make([]cachedDiagnostic, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{
				ID:            f.ID,
				Title:         f.Title,
				Kind:          uint8(f.Kind),
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
			}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// restore rebuilds a bag; spans are re-attached to file since FileIDs are
// not stable between runs.
func (p *DiskPayload) restore(file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	span := func(start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: span(n.Start, n.End), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			f := &diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
			}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{Span: span(e.Start, e.End), NewText: e.NewText, OldText: e.OldText})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
	return bag
}
