package multimap

// MapAccess is implemented by decoders which hand out the entries of an
// encoded mapping one at a time, in document order.
type MapAccess[K, V any] interface {
	// SizeHint returns the number of entries left to decode, if known.
	SizeHint() (int, bool)

	// NextEntry decodes the next entry. ok is false once the mapping has been
	// exhausted.
	NextEntry() (key K, value V, ok bool, err error)
}

// MapEncoder is implemented by encoders which write a mapping one entry at a
// time.
type MapEncoder[K, V any] interface {
	// BeginMap starts a mapping that will hold exactly length entries.
	BeginMap(length int) error

	// EncodeEntry writes a single entry.
	EncodeEntry(key K, value V) error

	// EndMap finishes the mapping.
	EndMap() error
}

// Decode builds a map from every entry offered by access, in the order it
// offers them. Duplicate keys are kept.
//
// An error from access is returned as-is and no map is returned.
func Decode[K comparable, V any](access MapAccess[K, V]) (*OrderedMultiMap[K, V], error) {
	hint, _ := access.SizeHint()
	m := NewWithCapacity[K, V](hint)
	for {
		key, value, ok, err := access.NextEntry()
		if err != nil {
			return nil, err
		}
		if !ok {
			return m, nil
		}
		m.Insert(key, value)
	}
}

// Encode writes every entry to enc exactly once, in insertion order.
// Errors from enc are returned as-is.
func (m *OrderedMultiMap[K, V]) Encode(enc MapEncoder[K, V]) error {
	if err := enc.BeginMap(m.Len()); err != nil {
		return err
	}
	for key, value := range m.All() {
		if err := enc.EncodeEntry(key, value); err != nil {
			return err
		}
	}
	return enc.EndMap()
}
