package multimap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

var (
	_ cbor.Marshaler   = OrderedMultiMap[string, int]{}
	_ cbor.Unmarshaler = (*OrderedMultiMap[string, int])(nil)
)

const (
	cborMajorTypeMap  = 5
	cborIndefinite    = 31
	cborBreak         = 0xff
	cborNull          = 0xf6
	cborUndefined     = 0xf7
	cborMinEntrySize  = 2
	cborMapHeaderByte = cborMajorTypeMap << 5
)

// MarshalCBOR encodes the map as a definite-length CBOR map whose entries
// appear in insertion order. Duplicate keys are written verbatim.
func (m OrderedMultiMap[K, V]) MarshalCBOR() ([]byte, error) {
	enc := &cborMapEncoder[K, V]{}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.buf, nil
}

// UnmarshalCBOR decodes a definite or indefinite-length CBOR map, inserting
// entries in encoded order and keeping duplicate keys. CBOR null and undefined
// leave the map unchanged.
func (m *OrderedMultiMap[K, V]) UnmarshalCBOR(data []byte) error {
	if len(data) == 1 && (data[0] == cborNull || data[0] == cborUndefined) {
		return nil
	}

	length, rest, err := readCBORMapHeader(data)
	if err != nil {
		return err
	}

	access := &cborMapAccess[K, V]{data: rest, remaining: length}
	decoded, err := Decode[K, V](access)
	if err != nil {
		return err
	}

	if len(access.data) > 0 {
		return errors.New("cbor: unexpected data after map")
	}

	*m = *decoded
	return nil
}

// readCBORMapHeader parses the initial byte(s) of a CBOR map. length is -1 for
// an indefinite-length map.
func readCBORMapHeader(data []byte) (length int, rest []byte, err error) {
	if len(data) == 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}

	initial := data[0]
	if major := initial >> 5; major != cborMajorTypeMap {
		return 0, nil, fmt.Errorf("cbor: expected a map, found major type %d", major)
	}

	info := initial & 0x1f
	data = data[1:]

	var n uint64
	switch {
	case info < 24:
		n = uint64(info)
	case info == cborIndefinite:
		return -1, data, nil
	case info <= 27:
		size := 1 << (info - 24)
		if len(data) < size {
			return 0, nil, io.ErrUnexpectedEOF
		}
		if n, err = readCBORUint(data, size); err != nil {
			return 0, nil, err
		}
		data = data[size:]
	default:
		return 0, nil, fmt.Errorf("cbor: invalid additional information %d for map", info)
	}

	if n > math.MaxInt32 {
		return 0, nil, fmt.Errorf("cbor: map length %d is too large", n)
	}
	return int(n), data, nil
}

// readCBORUint reads a big-endian argument of 1, 2, 4 or 8 bytes.
func readCBORUint(data []byte, size int) (uint64, error) {
	switch size {
	case 1:
		return uint64(data[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(data)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(data)), nil
	case 8:
		return binary.BigEndian.Uint64(data), nil
	default:
		return 0, spiceerrors.MustBugf("unexpected CBOR argument size %d", size)
	}
}

func appendCBORMapHeader(dst []byte, length int) []byte {
	n := uint64(length)
	switch {
	case n < 24:
		return append(dst, cborMapHeaderByte|byte(n))
	case n <= math.MaxUint8:
		return append(dst, cborMapHeaderByte|24, byte(n))
	case n <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(dst, cborMapHeaderByte|25), uint16(n))
	case n <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(dst, cborMapHeaderByte|26), uint32(n))
	default:
		return binary.BigEndian.AppendUint64(append(dst, cborMapHeaderByte|27), n)
	}
}

type cborMapAccess[K, V any] struct {
	data      []byte
	remaining int // -1 while reading an indefinite-length map
}

func (a *cborMapAccess[K, V]) SizeHint() (int, bool) {
	if a.remaining < 0 {
		return 0, false
	}
	// Every entry takes at least two bytes, so a forged header cannot force a
	// huge allocation.
	return min(a.remaining, len(a.data)/cborMinEntrySize), true
}

func (a *cborMapAccess[K, V]) NextEntry() (key K, value V, ok bool, err error) {
	switch {
	case a.remaining == 0:
		return key, value, false, nil
	case a.remaining < 0:
		if len(a.data) == 0 {
			return key, value, false, io.ErrUnexpectedEOF
		}
		if a.data[0] == cborBreak {
			a.data = a.data[1:]
			a.remaining = 0
			return key, value, false, nil
		}
	default:
		a.remaining--
	}

	a.data, err = cbor.UnmarshalFirst(a.data, &key)
	if err != nil {
		return key, value, false, err
	}
	a.data, err = cbor.UnmarshalFirst(a.data, &value)
	if err != nil {
		return key, value, false, err
	}
	return key, value, true, nil
}

type cborMapEncoder[K, V any] struct {
	buf []byte
}

func (e *cborMapEncoder[K, V]) BeginMap(length int) error {
	e.buf = appendCBORMapHeader(e.buf, length)
	return nil
}

func (e *cborMapEncoder[K, V]) EncodeEntry(key K, value V) error {
	encodedKey, err := cbor.Marshal(key)
	if err != nil {
		return err
	}
	encodedValue, err := cbor.Marshal(value)
	if err != nil {
		return err
	}
	e.buf = append(append(e.buf, encodedKey...), encodedValue...)
	return nil
}

func (e *cborMapEncoder[K, V]) EndMap() error { return nil }
