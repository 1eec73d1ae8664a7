package diag

import (
	"sort"
)

// Bag collects diagnostics in emission order, up to max entries.
// Duplicates by (Code, Primary) are dropped on insert and do not count
// towards max.
type Bag struct {
	items []*Diagnostic
	max   int
	seen  map[bagKey]struct{} // nil: пересобрать из items при следующем Add
}

// NewBag создаёт Bag с лимитом max; max <= 0 означает "без лимита".
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 64
	}
	return &Bag{
		items: make([]*Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (дубликат или достигнут лимит).
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	key := keyOf(d)
	if _, dup := b.index()[key]; dup {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.seen[key] = struct{}{}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) index() map[bagKey]struct{} {
	if b.seen == nil {
		b.seen = make(map[bagKey]struct{}, len(b.items))
		for _, d := range b.items {
			b.seen[keyOf(d)] = struct{}{}
		}
	}
	return b.seen
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity == Warning
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge дописывает диагностики other; лимит расширяется, чтобы вместить все.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.seen = nil
}

// Sort упорядочивает по файлу и позиции начала. Сортировка стабильная:
// диагностики в одной позиции сохраняют порядок эмиссии.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i].Primary, b.items[j].Primary
		if di.File != dj.File {
			return di.File < dj.File
		}
		return di.Start < dj.Start
	})
}

type bagKey struct {
	code    Code
	primary [3]uint32
}

func keyOf(d *Diagnostic) bagKey {
	return bagKey{code: d.Code, primary: [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End}}
}

// Dedup оставляет первую диагностику для каждой пары (Code, Primary).
func (b *Bag) Dedup() {
	seen := make(map[bagKey]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := keyOf(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	for i := len(out); i < len(b.items); i++ {
		b.items[i] = nil
	}
	b.items = out
	b.seen = seen
}

// Finalize приводит Bag к виду для вывода: Dedup, затем Sort.
func (b *Bag) Finalize() {
	b.Dedup()
	b.Sort()
}

// Filter оставляет только диагностики, для которых keep возвращает true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
	b.seen = nil
}

// Transform применяет fn ко всем диагностикам (например, warnings-as-errors).
func (b *Bag) Transform(fn func(*Diagnostic)) {
	for _, d := range b.items {
		fn(d)
	}
	b.seen = nil
}
