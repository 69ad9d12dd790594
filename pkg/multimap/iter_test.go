package multimap

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
	"github.com/fakemap/fakemap/pkg/testutil"
)

func sampleMap() *OrderedMultiMap[string, int] {
	return FromPairs(
		Pair[string, int]{"a", 1},
		Pair[string, int]{"b", 2},
		Pair[string, int]{"a", 3},
		Pair[string, int]{"c", 4},
	)
}

func TestAll(t *testing.T) {
	m := sampleMap()

	var seen []Pair[string, int]
	for key, value := range m.All() {
		seen = append(seen, Pair[string, int]{key, value})
	}
	testutil.RequireEqualEmptyNil(t, m.Entries(), seen)
}

func TestIteratorsAreRestartable(t *testing.T) {
	m := sampleMap()
	keys := m.Keys()

	require.Equal(t, []string{"a", "b", "a", "c"}, slices.Collect(keys))
	require.Equal(t, []string{"a", "b", "a", "c"}, slices.Collect(keys))
	require.Equal(t, []int{1, 2, 3, 4}, slices.Collect(m.Values()))
	require.Equal(t, []int{1, 2, 3, 4}, slices.Collect(m.Values()))
}

func TestIteratorEarlyExit(t *testing.T) {
	m := sampleMap()

	var visited []int
	for value := range m.Values() {
		visited = append(visited, value)
		if value == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, visited)
}

func TestEmptyIterators(t *testing.T) {
	var nilMap *OrderedMultiMap[string, int]
	for range nilMap.All() {
		require.Fail(t, "nil map yielded an entry")
	}

	m := New[string, int]()
	require.Empty(t, slices.Collect(m.Keys()))
	require.Empty(t, slices.Collect(m.Values()))
	require.Empty(t, slices.Collect(m.KeysMut()))
	require.Empty(t, slices.Collect(m.ValuesMut()))
}

func TestValuesMut(t *testing.T) {
	m := sampleMap()
	for value := range m.ValuesMut() {
		*value *= 10
	}

	testutil.RequireEqualEmptyNil(t, []Pair[string, int]{{"a", 10}, {"b", 20}, {"a", 30}, {"c", 40}}, m.Entries())
}

func TestAllMut(t *testing.T) {
	m := sampleMap()
	for key, value := range m.AllMut() {
		if key == "a" {
			*value = -*value
		}
	}

	testutil.RequireEqualEmptyNil(t, []Pair[string, int]{{"a", -1}, {"b", 2}, {"a", -3}, {"c", 4}}, m.Entries())
}

func TestKeysMutYieldsCopies(t *testing.T) {
	m := sampleMap()
	for key := range m.KeysMut() {
		key += "-changed"
		require.NotEmpty(t, key)
	}

	require.Equal(t, []string{"a", "b", "a", "c"}, m.KeySlice())
}

func TestCollect(t *testing.T) {
	m := Collect(maps.All(map[string]int{"only": 1}))
	require.Equal(t, 1, m.Len())

	round := Collect(sampleMap().All())
	require.True(t, Equal(sampleMap(), round))
}

func TestMutationDuringIteration(t *testing.T) {
	m := sampleMap()

	mutate := func() {
		for key := range m.Keys() {
			m.Remove(key)
		}
	}

	if spiceerrors.DebugAssertionsEnabled {
		require.Panics(t, mutate)
		return
	}

	// Without the guard the traversal stops at the shortened length.
	require.NotPanics(t, mutate)
	require.Less(t, m.Len(), 4)
}
