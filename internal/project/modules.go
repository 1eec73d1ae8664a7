package project

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/BurntSushi/toml"

	"ocl/internal/symbols"
	"ocl/internal/types"
)

// IsValidModuleIdent reports whether name can be written after `import`.
func IsValidModuleIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// collectModules turns [modules.<name>] tables into export lists. The order
// of exports follows the order of keys in the file.
func collectModules(meta toml.MetaData, raw map[string]map[string]string) (map[string][]symbols.Export, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string][]symbols.Export, len(raw))
	for _, key := range meta.Keys() {
		if len(key) != 3 || key[0] != "modules" {
			continue
		}
		module, name := key[1], key[2]
		out[module] = append(out[module], symbols.Export{Name: name, Signature: raw[module][name]})
	}
	for module := range raw {
		if _, ok := out[module]; !ok {
			out[module] = nil
		}
	}

	in := types.NewInterner()
	var errs []error
	for module, exports := range out {
		if !IsValidModuleIdent(module) {
			errs = append(errs, fmt.Errorf("invalid module name %q", module))
			continue
		}
		for _, exp := range exports {
			if !IsValidModuleIdent(exp.Name) {
				errs = append(errs, fmt.Errorf("module %q: invalid export name %q", module, exp.Name))
				continue
			}
			if _, err := in.ParseSignature(exp.Signature); err != nil {
				errs = append(errs, fmt.Errorf("module %q: export %q: %w", module, exp.Name, err))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
