package multimap

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	_ json.Marshaler   = OrderedMultiMap[string, int]{}
	_ json.Unmarshaler = (*OrderedMultiMap[string, int])(nil)
)

// MarshalJSON encodes the map as a JSON object whose members appear in
// insertion order. Duplicate keys are written verbatim.
//
// Object member names must be strings: keys implementing encoding.TextMarshaler
// use their text, string keys are used as-is and numeric or boolean keys are
// quoted. Any other key is an error.
func (m OrderedMultiMap[K, V]) MarshalJSON() ([]byte, error) {
	enc := &jsonMapEncoder[K, V]{}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, inserting members in document order and
// keeping duplicate names. A JSON null leaves the map unchanged.
func (m *OrderedMultiMap[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	token, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return errors.New("unexpected end of JSON input")
	} else if err != nil {
		return err
	}

	if token == nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, found %v", token)
	}

	decoded, err := Decode[K, V](&jsonMapAccess[K, V]{dec: dec})
	if err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON object")
	}

	*m = *decoded
	return nil
}

type jsonMapAccess[K, V any] struct {
	dec  *json.Decoder
	done bool
}

func (a *jsonMapAccess[K, V]) SizeHint() (int, bool) { return 0, false }

func (a *jsonMapAccess[K, V]) NextEntry() (key K, value V, ok bool, err error) {
	if a.done {
		return key, value, false, nil
	}

	token, err := a.dec.Token()
	if err != nil {
		return key, value, false, err
	}

	if delim, isDelim := token.(json.Delim); isDelim && delim == '}' {
		a.done = true
		return key, value, false, nil
	}

	name, isString := token.(string)
	if !isString {
		return key, value, false, fmt.Errorf("expected a JSON object member name, found %v", token)
	}

	key, err = decodeJSONKey[K](name)
	if err != nil {
		return key, value, false, err
	}

	if err := a.dec.Decode(&value); err != nil {
		return key, value, false, err
	}
	return key, value, true, nil
}

// decodeJSONKey reverses encodeJSONKey.
func decodeJSONKey[K any](name string) (K, error) {
	var key K
	if tu, ok := any(&key).(encoding.TextUnmarshaler); ok {
		err := tu.UnmarshalText([]byte(name))
		return key, err
	}

	quoted, err := json.Marshal(name)
	if err != nil {
		return key, err
	}

	stringErr := json.Unmarshal(quoted, &key)
	if stringErr == nil {
		return key, nil
	}

	// Numeric and boolean keys travel as quoted text.
	if !isJSONLiteral(name) {
		return key, stringErr
	}

	var literalKey K
	if err := json.Unmarshal([]byte(name), &literalKey); err != nil {
		return key, stringErr
	}
	return literalKey, nil
}

func isJSONLiteral(text string) bool {
	if text == "true" || text == "false" {
		return true
	}
	if text == "" || !json.Valid([]byte(text)) {
		return false
	}
	c := text[0]
	return c == '-' || (c >= '0' && c <= '9')
}

type jsonMapEncoder[K, V any] struct {
	buf     bytes.Buffer
	written int
}

func (e *jsonMapEncoder[K, V]) BeginMap(int) error {
	e.buf.WriteByte('{')
	return nil
}

func (e *jsonMapEncoder[K, V]) EncodeEntry(key K, value V) error {
	name, err := encodeJSONKey(key)
	if err != nil {
		return err
	}

	encodedValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if e.written > 0 {
		e.buf.WriteByte(',')
	}
	e.buf.Write(name)
	e.buf.WriteByte(':')
	e.buf.Write(encodedValue)
	e.written++
	return nil
}

func (e *jsonMapEncoder[K, V]) EndMap() error {
	e.buf.WriteByte('}')
	return nil
}

// encodeJSONKey returns the quoted JSON member name for key.
func encodeJSONKey[K any](key K) ([]byte, error) {
	if tm, ok := any(key).(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, err
		}
		return json.Marshal(string(text))
	}

	encoded, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}

	switch {
	case len(encoded) > 0 && encoded[0] == '"':
		return encoded, nil
	case isJSONLiteral(string(encoded)):
		return json.Marshal(string(encoded))
	default:
		return nil, fmt.Errorf("unsupported JSON object key %s: keys must encode to a string, number or boolean", encoded)
	}
}
