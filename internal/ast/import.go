package ast

import "ocl/internal/source"

// ImportItem represents `import module;`.
type ImportItem struct {
	Module     source.StringID
	ModuleSpan source.Span
}

// Import returns the ImportItem for the given ItemID, or nil/false if invalid.
func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

func (i *Items) NewImport(module source.StringID, moduleSpan, span source.Span) ItemID {
	payload := i.Imports.Allocate(ImportItem{Module: module, ModuleSpan: moduleSpan})
	return i.New(ItemImport, span, PayloadID(payload))
}
