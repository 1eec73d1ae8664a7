// Package stdlib provides the catalog of importable modules: the embedded
// built-in modules (math, string, time) plus user modules declared in
// ocl.toml. Registry is the default symbols.ImportResolver.
package stdlib
