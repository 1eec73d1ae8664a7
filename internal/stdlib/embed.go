package stdlib

import (
	_ "embed"
)

//go:embed modules.toml
var builtinModules []byte

// BuiltinCatalog exposes the embedded module catalog in its TOML form.
func BuiltinCatalog() []byte {
	return builtinModules
}
