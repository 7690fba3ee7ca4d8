package ident

// Map is an ordered, case-insensitive dictionary: keys are looked up by
// their folded form but the original casing of the first (or most
// recent, on overwrite) Set is preserved for output. It backs every
// property map, method map, qualifier map, and keybinding set in the
// CIM object model (spec §3, §9 "Case-insensitive dictionaries").
type Map[V any] struct {
	entries map[string]entry[V]
	order   []string // folded keys, insertion order
}

type entry[V any] struct {
	original string
	value    V
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// NewMapWithCapacity returns an empty Map pre-sized for n entries.
func NewMapWithCapacity[V any](n int) *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V], n), order: make([]string, 0, n)}
}

// Set stores value under key, overwriting any existing entry (including
// its recorded original casing) regardless of the case the existing key
// was stored under.
func (m *Map[V]) Set(key string, value V) {
	folded := Normalize(key)
	if _, ok := m.entries[folded]; !ok {
		m.order = append(m.order, folded)
	}
	m.entries[folded] = entry[V]{original: key, value: value}
}

// SetIfAbsent stores value under key only if no entry with the folded
// key exists yet, reporting whether it did so.
func (m *Map[V]) SetIfAbsent(key string, value V) bool {
	folded := Normalize(key)
	if _, ok := m.entries[folded]; ok {
		return false
	}
	m.order = append(m.order, folded)
	m.entries[folded] = entry[V]{original: key, value: value}
	return true
}

// Get retrieves the value stored under key, case-insensitively.
func (m *Map[V]) Get(key string) (V, bool) {
	e, ok := m.entries[Normalize(key)]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Has reports whether key (any case) has an entry.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.entries[Normalize(key)]
	return ok
}

// GetOriginalKey returns the casing key was originally Set under, or ""
// if no entry exists.
func (m *Map[V]) GetOriginalKey(key string) string {
	e, ok := m.entries[Normalize(key)]
	if !ok {
		return ""
	}
	return e.original
}

// Delete removes the entry for key, reporting whether it existed.
func (m *Map[V]) Delete(key string) bool {
	folded := Normalize(key)
	if _, ok := m.entries[folded]; !ok {
		return false
	}
	delete(m.entries, folded)
	for i, k := range m.order {
		if k == folded {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return len(m.entries) }

// Keys returns the original-case keys in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.order))
	for _, folded := range m.order {
		keys = append(keys, m.entries[folded].original)
	}
	return keys
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for _, folded := range m.order {
		e := m.entries[folded]
		if !fn(e.original, e.value) {
			return
		}
	}
}

// Clear removes all entries.
func (m *Map[V]) Clear() {
	m.entries = make(map[string]entry[V])
	m.order = nil
}

// Clone returns a shallow copy: values are copied by assignment, so
// pointer/slice/map values are shared with the original.
func (m *Map[V]) Clone() *Map[V] {
	c := &Map[V]{
		entries: make(map[string]entry[V], len(m.entries)),
		order:   append([]string(nil), m.order...),
	}
	for k, v := range m.entries {
		c.entries[k] = v
	}
	return c
}
