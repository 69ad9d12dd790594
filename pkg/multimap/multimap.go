// Package multimap implements an ordered multimap: a key-value container that
// keeps every entry in insertion order and allows the same key to appear more
// than once.
//
// Lookups and removals scan the entries linearly from the start and act on the
// first match. There is no hash index.
//
// An OrderedMultiMap is not safe for concurrent use. Callers sharing one across
// goroutines must provide their own mutual exclusion.
package multimap

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

// Pair is a single entry of an OrderedMultiMap.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// String renders the pair as key:value.
func (p Pair[K, V]) String() string {
	return fmt.Sprintf("%v:%v", p.Key, p.Value)
}

// OrderedMultiMap is a sequence of key-value entries kept in insertion order.
// Keys are not required to be unique.
//
// The zero value is an empty map ready to use.
type OrderedMultiMap[K comparable, V any] struct {
	entries []Pair[K, V]
}

// New initializes a new, empty OrderedMultiMap.
func New[K comparable, V any]() *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{}
}

// NewWithCapacity initializes an empty OrderedMultiMap with room for capacity
// entries before any reallocation.
func NewWithCapacity[K comparable, V any](capacity int) *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{entries: make([]Pair[K, V], 0, max(capacity, 0))}
}

// FromPairs builds a map holding the given pairs in the order given.
func FromPairs[K comparable, V any](pairs ...Pair[K, V]) *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{entries: slices.Clone(pairs)}
}

// Insert appends the key and value as a new entry.
//
// An existing entry with an equal key is *not* replaced: both entries are kept
// and the earlier one continues to win lookups.
func (m *OrderedMultiMap[K, V]) Insert(key K, value V) {
	m.entries = append(m.entries, Pair[K, V]{Key: key, Value: value})
}

// Len returns the number of entries, counting each duplicate key separately.
func (m *OrderedMultiMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// IsEmpty returns true if the map holds no entries.
func (m *OrderedMultiMap[K, V]) IsEmpty() bool { return m.Len() == 0 }

// IndexOf returns the position of the first entry with the given key, or -1.
func (m *OrderedMultiMap[K, V]) IndexOf(key K) int {
	return m.IndexFunc(func(k K) bool { return k == key })
}

// IndexFunc returns the position of the first entry whose key satisfies match,
// or -1.
//
// The predicate form lets callers look up entries with a query of a different
// type than K, e.g. a []byte against string keys.
func (m *OrderedMultiMap[K, V]) IndexFunc(match func(K) bool) int {
	if m == nil {
		return -1
	}
	for i := range m.entries {
		if match(m.entries[i].Key) {
			return i
		}
	}
	return -1
}

// Get returns the value of the first entry with the given key and whether such
// an entry exists.
func (m *OrderedMultiMap[K, V]) Get(key K) (V, bool) {
	return m.at(m.IndexOf(key))
}

// GetFunc returns the value of the first entry whose key satisfies match.
func (m *OrderedMultiMap[K, V]) GetFunc(match func(K) bool) (V, bool) {
	return m.at(m.IndexFunc(match))
}

func (m *OrderedMultiMap[K, V]) at(index int) (V, bool) {
	if index < 0 {
		var zero V
		return zero, false
	}
	return m.entries[index].Value, true
}

// GetAll returns the values of every entry with the given key, in insertion
// order. If the key does not exist, an empty slice is returned.
func (m *OrderedMultiMap[K, V]) GetAll(key K) []V {
	values := []V{}
	for k, v := range m.All() {
		if k == key {
			values = append(values, v)
		}
	}
	return values
}

// Has returns true if at least one entry has the given key.
func (m *OrderedMultiMap[K, V]) Has(key K) bool { return m.IndexOf(key) >= 0 }

// CountOf returns the number of entries with the given key.
func (m *OrderedMultiMap[K, V]) CountOf(key K) int {
	count := 0
	for k := range m.Keys() {
		if k == key {
			count++
		}
	}
	return count
}

// GetAt returns the value stored at the given position.
//
// The index must be in [0, Len()); any other index is a programming error and
// panics.
func (m *OrderedMultiMap[K, V]) GetAt(index int) V {
	return m.PairAt(index).Value
}

// PairAt returns the entry stored at the given position. It panics on an index
// outside [0, Len()).
func (m *OrderedMultiMap[K, V]) PairAt(index int) Pair[K, V] {
	m.mustBeInRange(index)
	return m.entries[index]
}

func (m *OrderedMultiMap[K, V]) mustBeInRange(index int) {
	if index < 0 || index >= m.Len() {
		spiceerrors.MustPanicf("index %d out of range for ordered multimap of length %d", index, m.Len())
	}
}

// Remove deletes the first entry with the given key and returns its value.
// Later entries shift down by one, keeping their relative order. Other entries
// with the same key are left in place.
func (m *OrderedMultiMap[K, V]) Remove(key K) (V, bool) {
	return m.removeIndex(m.IndexOf(key))
}

// RemoveFunc deletes the first entry whose key satisfies match and returns its
// value.
func (m *OrderedMultiMap[K, V]) RemoveFunc(match func(K) bool) (V, bool) {
	return m.removeIndex(m.IndexFunc(match))
}

// RemoveAt deletes and returns the entry at the given position. It panics on
// an index outside [0, Len()).
func (m *OrderedMultiMap[K, V]) RemoveAt(index int) Pair[K, V] {
	m.mustBeInRange(index)
	removed := m.entries[index]
	m.entries = slices.Delete(m.entries, index, index+1)
	return removed
}

func (m *OrderedMultiMap[K, V]) removeIndex(index int) (V, bool) {
	if index < 0 {
		var zero V
		return zero, false
	}
	return m.RemoveAt(index).Value, true
}

// RemoveAll deletes every entry with the given key and returns how many were
// removed.
func (m *OrderedMultiMap[K, V]) RemoveAll(key K) int {
	if m == nil {
		return 0
	}
	before := len(m.entries)
	m.entries = slices.DeleteFunc(m.entries, func(p Pair[K, V]) bool { return p.Key == key })
	return before - len(m.entries)
}

// Clear removes all entries, retaining the allocated capacity.
func (m *OrderedMultiMap[K, V]) Clear() {
	if m == nil {
		return
	}
	clear(m.entries)
	m.entries = m.entries[:0]
}

// Entries returns a copy of all entries in insertion order.
func (m *OrderedMultiMap[K, V]) Entries() []Pair[K, V] {
	if m == nil {
		return []Pair[K, V]{}
	}
	return append(make([]Pair[K, V], 0, len(m.entries)), m.entries...)
}

// KeySlice returns the keys of all entries in insertion order, duplicates
// included.
func (m *OrderedMultiMap[K, V]) KeySlice() []K {
	return slices.AppendSeq(make([]K, 0, m.Len()), m.Keys())
}

// ValueSlice returns the values of all entries in insertion order.
func (m *OrderedMultiMap[K, V]) ValueSlice() []V {
	return slices.AppendSeq(make([]V, 0, m.Len()), m.Values())
}

// Clone returns a shallow copy of the map.
func (m *OrderedMultiMap[K, V]) Clone() *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{entries: m.Entries()}
}

// String renders the entries in insertion order, e.g. OrderedMultiMap[a:1 a:2].
func (m *OrderedMultiMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("OrderedMultiMap[")
	for i, entry := range m.Entries() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(entry.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports whether both maps hold the same entries in the same order.
// A nil map is equal to an empty one.
func Equal[K, V comparable](a, b *OrderedMultiMap[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K comparable, V1, V2 any](a *OrderedMultiMap[K, V1], b *OrderedMultiMap[K, V2], eq func(V1, V2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if a.entries[i].Key != b.entries[i].Key || !eq(a.entries[i].Value, b.entries[i].Value) {
			return false
		}
	}
	return true
}

// Compare orders two maps entry by entry in insertion order, comparing keys
// before values. The result follows slices.Compare: a map that is a prefix of
// the other sorts first, and a nil map compares like an empty one.
func Compare[K, V cmp.Ordered](a, b *OrderedMultiMap[K, V]) int {
	return CompareFunc(a, b, cmp.Compare[V])
}

// CompareFunc is like Compare but compares values with cmpV.
func CompareFunc[K cmp.Ordered, V1, V2 any](a *OrderedMultiMap[K, V1], b *OrderedMultiMap[K, V2], cmpV func(V1, V2) int) int {
	return slices.CompareFunc(a.pairs(), b.pairs(), func(x Pair[K, V1], y Pair[K, V2]) int {
		if c := cmp.Compare(x.Key, y.Key); c != 0 {
			return c
		}
		return cmpV(x.Value, y.Value)
	})
}

func (m *OrderedMultiMap[K, V]) pairs() []Pair[K, V] {
	if m == nil {
		return nil
	}
	return m.entries
}
