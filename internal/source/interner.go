package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type StringID uint32

const NoStringID StringID = 0

// Interner хранит уникальные строки (имена идентификаторов, литералы).
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern возвращает ID строки, добавляя её при первом появлении.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// своя копия, чтобы не держать исходный буфер
	cpy := string([]byte(s))
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup возвращает строку по ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup паникует на невалидном ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len returns the number of interned strings including NoStringID.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all strings ordered by ID.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
