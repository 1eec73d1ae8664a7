package stdlib

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	"ocl/internal/symbols"
	"ocl/internal/types"
)

// ErrModuleNotFound is returned by Registry.Resolve for unknown modules.
var ErrModuleNotFound = errors.New("module not found")

// Registry maps module names to their exports. A Registry is immutable once
// built and safe for concurrent use.
type Registry struct {
	modules map[string][]symbols.Export
}

var _ symbols.ImportResolver = (*Registry)(nil)

type catalog struct {
	Modules map[string]map[string]string `toml:"modules"`
}

// Parse decodes a catalog in the modules.toml format. Export order follows
// the order of keys in the document; every signature is validated.
func Parse(data []byte) (*Registry, error) {
	var cat catalog
	meta, err := toml.Decode(string(data), &cat)
	if err != nil {
		return nil, fmt.Errorf("failed to parse module catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("module catalog: unknown key %q", undecoded[0].String())
	}

	r := &Registry{modules: make(map[string][]symbols.Export, len(cat.Modules))}
	for _, key := range meta.Keys() {
		// интересуют только ключи вида modules.<module>.<name>
		if len(key) != 3 || key[0] != "modules" {
			continue
		}
		module, name := key[1], key[2]
		r.modules[module] = append(r.modules[module], symbols.Export{
			Name:      name,
			Signature: cat.Modules[module][name],
		})
	}
	for module := range cat.Modules {
		if _, ok := r.modules[module]; !ok {
			r.modules[module] = nil // пустой модуль тоже импортируем
		}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return Parse(builtinModules)
})

// Default returns the registry of built-in modules.
func Default() *Registry {
	r, err := defaultRegistry()
	if err != nil {
		panic(fmt.Errorf("embedded module catalog is broken: %w", err))
	}
	return r
}

// With returns a new registry extending r with extra modules. Extra modules
// replace built-in ones of the same name.
func (r *Registry) With(extra map[string][]symbols.Export) (*Registry, error) {
	merged := &Registry{modules: maps.Clone(r.modules)}
	if merged.modules == nil {
		merged.modules = make(map[string][]symbols.Export, len(extra))
	}
	for name, exports := range extra {
		merged.modules[name] = slices.Clone(exports)
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Resolve implements symbols.ImportResolver.
func (r *Registry) Resolve(module string) ([]symbols.Export, error) {
	exports, ok := r.modules[module]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, module)
	}
	return slices.Clone(exports), nil
}

// Modules returns module names in sorted order.
func (r *Registry) Modules() []string {
	return slices.Sorted(maps.Keys(r.modules))
}

func (r *Registry) validate() error {
	in := types.NewInterner()
	var errs []error
	for _, module := range r.Modules() {
		for _, exp := range r.modules[module] {
			if _, err := in.ParseSignature(exp.Signature); err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", module, exp.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}
