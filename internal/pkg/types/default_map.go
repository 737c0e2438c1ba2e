package types

// DefaultMap is a map that materialises a default value the first time a
// missing key is read, and remembers the order in which keys were first seen.
//
// The insertion order makes iteration deterministic, which matters when the
// map feeds reports or logs that are compared across runs.
//
//	m := NewDefaultMap[string](func() *[]int { return new([]int) })
//	list := m.Get("a")
//	*list = append(*list, 1)
type DefaultMap[K comparable, V any] struct {
	data        map[K]V
	order       []K
	defaultFunc func() V
}

// NewDefaultMap creates an empty DefaultMap using defaultFunc for missing keys.
func NewDefaultMap[K comparable, V any](defaultFunc func() V) DefaultMap[K, V] {
	return DefaultMap[K, V]{
		data:        make(map[K]V),
		defaultFunc: defaultFunc,
	}
}

// Get returns the value for key, storing and returning a default when absent.
func (d *DefaultMap[K, V]) Get(key K) V {
	if val, ok := d.data[key]; ok {
		return val
	}

	val := d.defaultFunc()
	d.data[key] = val
	d.order = append(d.order, key)
	return val
}

// Lookup returns the value for key without creating a default.
func (d *DefaultMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := d.data[key]
	return val, ok
}

// Keys returns the keys in first-seen order.
func (d *DefaultMap[K, V]) Keys() []K {
	keys := make([]K, len(d.order))
	copy(keys, d.order)
	return keys
}

// Len returns the number of stored keys.
func (d *DefaultMap[K, V]) Len() int {
	return len(d.data)
}
