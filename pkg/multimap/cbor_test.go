package multimap

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/fakemap/fakemap/pkg/testutil"
)

func TestMarshalCBOR(t *testing.T) {
	tcs := []struct {
		name     string
		m        cbor.Marshaler
		expected []byte
	}{
		{"empty", New[string, int](), []byte{0xa0}},
		{
			"duplicates",
			FromPairs(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"a", 3}),
			[]byte{0xa3, 0x61, 'a', 0x01, 0x61, 'b', 0x02, 0x61, 'a', 0x03},
		},
		{
			"int keys",
			FromPairs(Pair[int, int]{2, 4}, Pair[int, int]{-1, 1}),
			[]byte{0xa2, 0x02, 0x04, 0x20, 0x01},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out, err := cbor.Marshal(tc.m)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestAppendCBORMapHeader(t *testing.T) {
	tcs := []struct {
		length   int
		expected []byte
	}{
		{0, []byte{0xa0}},
		{23, []byte{0xb7}},
		{24, []byte{0xb8, 24}},
		{255, []byte{0xb8, 0xff}},
		{256, []byte{0xb9, 0x01, 0x00}},
		{65536, []byte{0xba, 0x00, 0x01, 0x00, 0x00}},
	}

	for _, tc := range tcs {
		header := appendCBORMapHeader(nil, tc.length)
		require.Equal(t, tc.expected, header)

		length, rest, err := readCBORMapHeader(header)
		require.NoError(t, err)
		require.Equal(t, tc.length, length)
		require.Empty(t, rest)
	}
}

func TestReadCBORUint(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	for size, expected := range map[int]uint64{
		1: 0x01,
		2: 0x0102,
		4: 0x01020304,
		8: 0x0102030405060708,
	} {
		n, err := readCBORUint(data, size)
		require.NoError(t, err)
		require.Equal(t, expected, n)
	}

	// Only the four sizes above can be encoded, so anything else is a bug.
	require.PanicsWithValue(t, "unexpected CBOR argument size 3", func() {
		_, _ = readCBORUint(data, 3)
	})
}

func TestUnmarshalCBOR(t *testing.T) {
	tcs := []struct {
		name     string
		data     []byte
		expected []Pair[string, int]
	}{
		{"empty definite", []byte{0xa0}, nil},
		{"empty indefinite", []byte{0xbf, 0xff}, nil},
		{
			"definite with duplicates",
			[]byte{0xa3, 0x61, 'a', 0x01, 0x61, 'b', 0x02, 0x61, 'a', 0x03},
			[]Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}},
		},
		{
			"indefinite with duplicates",
			[]byte{0xbf, 0x61, 'z', 0x01, 0x61, 'z', 0x02, 0xff},
			[]Pair[string, int]{{"z", 1}, {"z", 2}},
		},
		{
			"one byte length",
			[]byte{0xb8, 0x01, 0x61, 'a', 0x01},
			[]Pair[string, int]{{"a", 1}},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			m := New[string, int]()
			require.NoError(t, cbor.Unmarshal(tc.data, m))
			testutil.RequireEqualEmptyNil(t, tc.expected, m.Entries())
		})
	}
}

func TestUnmarshalCBORNullAndUndefined(t *testing.T) {
	for _, data := range [][]byte{{0xf6}, {0xf7}} {
		m := FromPairs(Pair[string, int]{"keep", 1})
		require.NoError(t, m.UnmarshalCBOR(data))
		testutil.RequireEqualEmptyNil(t, []Pair[string, int]{{"keep", 1}}, m.Entries())
	}
}

func TestUnmarshalCBORErrors(t *testing.T) {
	tcs := []struct {
		name          string
		data          []byte
		expectedError string
	}{
		{"empty input", []byte{}, "unexpected EOF"},
		{"array", []byte{0x82, 0x01, 0x02}, "cbor: expected a map, found major type 4"},
		{"reserved additional information", []byte{0xbc}, "cbor: invalid additional information 28 for map"},
		{"truncated length", []byte{0xb9, 0x01}, "unexpected EOF"},
		{"huge length", []byte{0xbb, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, "is too large"},
		{"forged length", []byte{0xba, 0x00, 0x10, 0x00, 0x00, 0x61, 'a', 0x01}, "EOF"},
		{"missing break", []byte{0xbf, 0x61, 'a', 0x01}, "unexpected EOF"},
		{"trailing data", []byte{0xa0, 0x01}, "cbor: unexpected data after map"},
		{"bad key", []byte{0xa1, 0x01, 0x01}, "cannot unmarshal"},
		{"bad value", []byte{0xa1, 0x61, 'a', 0x61, 'b'}, "cannot unmarshal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			m := FromPairs(Pair[string, int]{"keep", 1})
			err := m.UnmarshalCBOR(tc.data)
			require.ErrorContains(t, err, tc.expectedError)
			testutil.RequireEqualEmptyNil(t, []Pair[string, int]{{"keep", 1}}, m.Entries())
		})
	}
}

func TestCBORSizeHintIsClamped(t *testing.T) {
	access := &cborMapAccess[string, int]{data: []byte{0x61, 'a', 0x01}, remaining: 1 << 20}
	hint, ok := access.SizeHint()
	require.True(t, ok)
	require.Equal(t, 1, hint)

	indefinite := &cborMapAccess[string, int]{data: []byte{0xff}, remaining: -1}
	_, ok = indefinite.SizeHint()
	require.False(t, ok)
}

func TestCBORRoundTrip(t *testing.T) {
	m := decodeYAML[int, int](t, squaresYAML)
	m.Insert(2, 5)

	out, err := cbor.Marshal(m)
	require.NoError(t, err)

	decoded := New[int, int]()
	require.NoError(t, cbor.Unmarshal(out, decoded))
	require.True(t, Equal(m, decoded), "expected %s, found %s", m, decoded)
}

func TestCBORNested(t *testing.T) {
	inner := FromPairs(Pair[string, int]{"x", 1}, Pair[string, int]{"x", 2})
	m := FromPairs(Pair[string, *OrderedMultiMap[string, int]]{"outer", inner})

	out, err := cbor.Marshal(m)
	require.NoError(t, err)

	decoded := New[string, *OrderedMultiMap[string, int]]()
	require.NoError(t, cbor.Unmarshal(out, decoded))

	found, ok := decoded.Get("outer")
	require.True(t, ok)
	require.True(t, Equal(inner, found))
}
