package multimap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fakemap/fakemap/pkg/testutil"
)

type fakeMapAccess struct {
	pairs     []Pair[string, int]
	hint      int
	hinted    bool
	failAfter int
	err       error
}

func (f *fakeMapAccess) SizeHint() (int, bool) { return f.hint, f.hinted }

func (f *fakeMapAccess) NextEntry() (string, int, bool, error) {
	if f.err != nil && f.failAfter == 0 {
		return "", 0, false, f.err
	}
	f.failAfter--

	if len(f.pairs) == 0 {
		return "", 0, false, nil
	}
	next := f.pairs[0]
	f.pairs = f.pairs[1:]
	return next.Key, next.Value, true, nil
}

type recordingEncoder struct {
	length  int
	entries []Pair[string, int]
	ended   bool

	failOn int
	err    error
}

func (r *recordingEncoder) BeginMap(length int) error {
	r.length = length
	return nil
}

func (r *recordingEncoder) EncodeEntry(key string, value int) error {
	if r.err != nil && len(r.entries) == r.failOn {
		return r.err
	}
	r.entries = append(r.entries, Pair[string, int]{key, value})
	return nil
}

func (r *recordingEncoder) EndMap() error {
	r.ended = true
	return nil
}

func TestDecode(t *testing.T) {
	tcs := []struct {
		name   string
		access *fakeMapAccess
	}{
		{
			"with hint",
			&fakeMapAccess{pairs: []Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}}, hint: 3, hinted: true, failAfter: -1},
		},
		{
			"without hint",
			&fakeMapAccess{pairs: []Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}}, failAfter: -1},
		},
		{
			"hint larger than input",
			&fakeMapAccess{pairs: []Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}}, hint: 100, hinted: true, failAfter: -1},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Decode[string, int](tc.access)
			require.NoError(t, err)
			testutil.RequireEqualEmptyNil(t, []Pair[string, int]{{"a", 1}, {"b", 2}, {"a", 3}}, m.Entries())
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	m, err := Decode[string, int](&fakeMapAccess{failAfter: -1})
	require.NoError(t, err)
	require.NotNil(t, m)
	require.True(t, m.IsEmpty())
}

func TestDecodeErrorIsReturnedUnchanged(t *testing.T) {
	errBadElement := errors.New("bad element")

	m, err := Decode[string, int](&fakeMapAccess{
		pairs:     []Pair[string, int]{{"a", 1}, {"b", 2}, {"c", 3}},
		failAfter: 2,
		err:       errBadElement,
	})
	require.ErrorIs(t, err, errBadElement)
	require.Equal(t, errBadElement, err)
	require.Nil(t, m)
}

func TestEncode(t *testing.T) {
	m := FromPairs(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"a", 3})

	enc := &recordingEncoder{}
	require.NoError(t, m.Encode(enc))
	require.Equal(t, 3, enc.length)
	require.True(t, enc.ended)
	testutil.RequireEqualEmptyNil(t, m.Entries(), enc.entries)
}

func TestEncodeEmpty(t *testing.T) {
	enc := &recordingEncoder{}
	require.NoError(t, New[string, int]().Encode(enc))
	require.Equal(t, 0, enc.length)
	require.Empty(t, enc.entries)
	require.True(t, enc.ended)
}

func TestEncodeErrorIsReturnedUnchanged(t *testing.T) {
	errBadElement := errors.New("bad element")
	m := FromPairs(Pair[string, int]{"a", 1}, Pair[string, int]{"b", 2}, Pair[string, int]{"a", 3})

	enc := &recordingEncoder{failOn: 1, err: errBadElement}
	err := m.Encode(enc)
	require.Equal(t, errBadElement, err)
	require.False(t, enc.ended)
	require.Len(t, enc.entries, 1)
}
