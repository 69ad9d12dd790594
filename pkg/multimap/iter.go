package multimap

import (
	"iter"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

// Collect builds a map from a sequence of key-value pairs, keeping every pair
// in the order the sequence yields them.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *OrderedMultiMap[K, V] {
	m := New[K, V]()
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// All returns an iterator over all entries in insertion order.
//
// Each call returns an independent iterator. The map must not be modified
// while the iteration is in progress.
func (m *OrderedMultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.walk(func(entry *Pair[K, V]) bool {
			return yield(entry.Key, entry.Value)
		})
	}
}

// AllMut returns an iterator over all entries which yields a pointer to each
// value, so that values can be updated in place. Keys are yielded by value.
func (m *OrderedMultiMap[K, V]) AllMut() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		m.walk(func(entry *Pair[K, V]) bool {
			return yield(entry.Key, &entry.Value)
		})
	}
}

// Keys returns an iterator over the key of every entry, duplicates included.
func (m *OrderedMultiMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.walk(func(entry *Pair[K, V]) bool {
			return yield(entry.Key)
		})
	}
}

// KeysMut is the counterpart of ValuesMut for keys. Stored keys cannot be
// changed in place, so it yields copies exactly like Keys.
func (m *OrderedMultiMap[K, V]) KeysMut() iter.Seq[K] {
	return m.Keys()
}

// Values returns an iterator over the value of every entry.
func (m *OrderedMultiMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.walk(func(entry *Pair[K, V]) bool {
			return yield(entry.Value)
		})
	}
}

// ValuesMut returns an iterator yielding a pointer to the value of every entry.
func (m *OrderedMultiMap[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		m.walk(func(entry *Pair[K, V]) bool {
			return yield(&entry.Value)
		})
	}
}

func (m *OrderedMultiMap[K, V]) walk(fn func(entry *Pair[K, V]) bool) {
	if m == nil {
		return
	}

	length := len(m.entries)
	for i := 0; i < length && i < len(m.entries); i++ {
		if !fn(&m.entries[i]) {
			return
		}
		spiceerrors.DebugAssertf(func() bool { return len(m.entries) == length },
			"ordered multimap modified during iteration: length changed from %d to %d", length, len(m.entries))
	}
}
