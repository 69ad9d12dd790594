package multimap

import "iter"

// ReadOnly is a read-only ordered multimap.
type ReadOnly[K comparable, V any] interface {
	// Has returns true if at least one entry has the given key.
	Has(key K) bool

	// Get returns the value of the first entry with the given key and whether
	// such an entry exists.
	Get(key K) (V, bool)

	// GetAll returns the values of every entry with the given key.
	GetAll(key K) []V

	// GetAt returns the value at the given position. Panics if out of range.
	GetAt(index int) V

	// IsEmpty returns true if the map is currently empty.
	IsEmpty() bool

	// Len returns the number of entries, counting duplicate keys separately.
	Len() int

	// All returns an iterator over the entries in insertion order.
	All() iter.Seq2[K, V]

	// Keys returns an iterator over the keys in insertion order.
	Keys() iter.Seq[K]

	// Values returns an iterator over the values in insertion order.
	Values() iter.Seq[V]
}

// AsReadOnly returns a read-only *copy* of the map.
func (m *OrderedMultiMap[K, V]) AsReadOnly() ReadOnly[K, V] {
	return readOnly[K, V]{m.Clone()}
}

type readOnly[K comparable, V any] struct {
	inner *OrderedMultiMap[K, V]
}

func (ro readOnly[K, V]) Has(key K) bool { return ro.inner.Has(key) }
func (ro readOnly[K, V]) Get(key K) (V, bool) { return ro.inner.Get(key) }
func (ro readOnly[K, V]) GetAll(key K) []V { return ro.inner.GetAll(key) }
func (ro readOnly[K, V]) GetAt(index int) V { return ro.inner.GetAt(index) }
func (ro readOnly[K, V]) IsEmpty() bool { return ro.inner.IsEmpty() }
func (ro readOnly[K, V]) Len() int { return ro.inner.Len() }
func (ro readOnly[K, V]) All() iter.Seq2[K, V] { return ro.inner.All() }
func (ro readOnly[K, V]) Keys() iter.Seq[K] { return ro.inner.Keys() }
func (ro readOnly[K, V]) Values() iter.Seq[V] { return ro.inner.Values() }

var _ ReadOnly[string, int] = (*OrderedMultiMap[string, int])(nil)
