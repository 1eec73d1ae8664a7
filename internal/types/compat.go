package types

// Assignable reports whether a value of type from may be used where to is
// expected. Единственное неявное преобразование: Int → Float. Any
// принимает всё, кроме void.
func (in *Interner) Assignable(from, to TypeID) bool {
	if from == to {
		return true
	}
	fk, tk := in.KindOf(from), in.KindOf(to)
	switch {
	case tk == KindAny:
		return fk != KindVoid && fk != KindInvalid
	case fk == KindInt && tk == KindFloat:
		return true
	}
	return false
}

// IsNumeric reports int or float.
func (in *Interner) IsNumeric(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindInt || k == KindFloat
}
