package multimap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fakemap/fakemap/pkg/testutil"
)

func TestUnmarshalYAMLRejectsUnsafeAliases(t *testing.T) {
	tcs := []struct {
		name          string
		source        string
		expectedError string
		expectedLine  uint64
	}{
		{"anchor containing itself", "a: &a [*a]\n", "anchor 'a' value contains itself", 1},
		{"nested anchor containing itself", "a: 1\nb: &b\n  c: [1, *b]\n", "anchor 'b' value contains itself", 3},
		{"alias fan-out", testutil.AliasFanOutYAML(6, 10), "document contains excessive aliasing", 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			m := New[string, any]()
			err := yamlv3.Unmarshal([]byte(tc.source), m)
			requireSourceError(t, err, tc.expectedError, tc.expectedLine)
			require.True(t, m.IsEmpty())
		})
	}
}

func TestUnmarshalYAMLFollowsAliases(t *testing.T) {
	m := decodeYAML[string, []int](t, "base: &base [1, 2]\ncopy: *base\n")
	require.Equal(t, []string{"base", "copy"}, m.KeySlice())
	require.Equal(t, [][]int{{1, 2}, {1, 2}}, m.ValueSlice())

	small := decodeYAML[string, any](t, testutil.AliasFanOutYAML(2, 10))
	require.Equal(t, 2, small.Len())
}

func TestValidateYAMLAliases(t *testing.T) {
	tcs := []struct {
		name          string
		source        string
		expectedError string
	}{
		{"no aliases", "a: [1, 2]\n", ""},
		{"shared anchor", "a: &a {x: 1}\nb: *a\nc: *a\n", ""},
		{"alias of a scalar", "a: &a 1\nb: [*a, *a]\n", ""},
		{"sequence containing itself", "&s [1, *s]\n", "anchor 's' value contains itself"},
		{"mapping containing itself", "&m {a: {b: *m}}\n", "anchor 'm' value contains itself"},
		{"wide fan-out", testutil.AliasFanOutYAML(4, 40), "document contains excessive aliasing"},
		{"deep fan-out", testutil.AliasFanOutYAML(30, 2), "document contains excessive aliasing"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var node yamlv3.Node
			require.NoError(t, yamlv3.Unmarshal([]byte(tc.source), &node))

			err := ValidateYAMLAliases(&node)
			if tc.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.expectedError)
		})
	}
}

func TestExpandedSizeSaturates(t *testing.T) {
	var node yamlv3.Node
	require.NoError(t, yamlv3.Unmarshal([]byte(testutil.AliasFanOutYAML(40, 10)), &node))

	counter := &yamlNodeCounter{expanded: map[*yamlv3.Node]int{}, expanding: map[*yamlv3.Node]bool{}}
	size, err := counter.expandedSize(&node)
	require.NoError(t, err)
	require.Equal(t, math.MaxInt32, size)
}
