package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/fxamacker/cbor/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fakemap/fakemap/pkg/multimap"
	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

const yamlNullTag = "!!null"

// errNullKey is returned for a mapping key which is null. Keys are text, and no
// text would read back as null.
var errNullKey = errors.New("null mapping keys are not supported")

// Document is a decoded mapping. Order and duplicate keys are preserved at
// every depth.
type Document = multimap.OrderedMultiMap[string, Value]

// Value is a single decoded value: a nested *Document for mappings, a []Value
// for sequences and the native Go type for scalars.
type Value struct {
	inner any
}

// NewValue wraps v. Mappings should be passed as *Document and sequences as
// []Value so that they encode with their order intact.
func NewValue(v any) Value {
	return Value{inner: v}
}

// Interface returns the wrapped value.
func (v Value) Interface() any { return v.inner }

// Document returns the wrapped mapping, if the value is one.
func (v Value) Document() (*Document, bool) {
	doc, ok := v.inner.(*Document)
	return doc, ok
}

// Sequence returns the wrapped sequence, if the value is one.
func (v Value) Sequence() ([]Value, bool) {
	items, ok := v.inner.([]Value)
	return items, ok
}

// String renders scalars with fmt and collections with their own String.
func (v Value) String() string {
	if v.inner == nil {
		return "null"
	}
	return fmt.Sprint(v.inner)
}

// Equal reports whether both values hold the same data. Mappings must hold the
// same entries in the same order.
func (v Value) Equal(other Value) bool {
	switch inner := v.inner.(type) {
	case *Document:
		doc, ok := other.Document()
		return ok && multimap.EqualFunc(inner, doc, Value.Equal)
	case []Value:
		items, ok := other.Sequence()
		return ok && slices.EqualFunc(inner, items, Value.Equal)
	default:
		return reflect.DeepEqual(v.inner, other.inner)
	}
}

// scalar returns the wrapped value with JSON numbers converted to a native
// numeric type, so that non-JSON encoders do not write them as strings.
func (v Value) scalar() any {
	number, ok := v.inner.(json.Number)
	if !ok {
		return v.inner
	}
	if i, err := number.Int64(); err == nil {
		return i
	}
	if f, err := number.Float64(); err == nil {
		return f
	}
	return number.String()
}

// MarshalYAML implements yaml.v3's Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.scalar(), nil
}

// UnmarshalYAML is a custom unmarshaller. Nested mappings and sequences are
// decoded by walking node directly, after ValidateYAMLAliases has checked the
// whole graph once.
func (v *Value) UnmarshalYAML(node *yamlv3.Node) error {
	if err := multimap.ValidateYAMLAliases(node); err != nil {
		return err
	}

	decoded, err := valueFromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// valueFromYAMLNode converts a node graph already checked by
// ValidateYAMLAliases.
func valueFromYAMLNode(node *yamlv3.Node) (Value, error) {
	if node.Kind == yamlv3.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind {
	case yamlv3.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}
		return valueFromYAMLNode(node.Content[0])

	case yamlv3.MappingNode:
		doc, err := multimap.Decode[string, Value](&yamlNodeAccess{content: node.Content})
		if err != nil {
			return Value{}, err
		}
		return NewValue(doc), nil

	case yamlv3.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return NewValue(items), nil

	default:
		var scalar any
		if err := node.Decode(&scalar); err != nil {
			return Value{}, err
		}
		return NewValue(scalar), nil
	}
}

// yamlRoot decodes a top-level YAML mapping into doc through the same walker as
// nested values.
type yamlRoot struct {
	doc *Document
}

func (r *yamlRoot) UnmarshalYAML(node *yamlv3.Node) error {
	if node.Kind != yamlv3.MappingNode {
		// Reports the positioned "expected a mapping" error.
		return r.doc.UnmarshalYAML(node)
	}
	if err := multimap.ValidateYAMLAliases(node); err != nil {
		return err
	}

	decoded, err := multimap.Decode[string, Value](&yamlNodeAccess{content: node.Content})
	if err != nil {
		return err
	}
	*r.doc = *decoded
	return nil
}

// yamlNodeAccess hands out the entries of a mapping node, converting values
// with valueFromYAMLNode.
type yamlNodeAccess struct {
	content []*yamlv3.Node
}

func (a *yamlNodeAccess) SizeHint() (int, bool) { return len(a.content) / 2, true }

func (a *yamlNodeAccess) NextEntry() (string, Value, bool, error) {
	if len(a.content) < 2 {
		return "", Value{}, false, nil
	}

	keyNode, valueNode := a.content[0], a.content[1]
	a.content = a.content[2:]

	if keyNode.Kind == yamlv3.AliasNode && keyNode.Alias != nil {
		keyNode = keyNode.Alias
	}
	if keyNode.Kind == yamlv3.ScalarNode && keyNode.ShortTag() == yamlNullTag {
		return "", Value{}, false, spiceerrors.NewWithSourceError(errNullKey, keyNode.Value, uint64(keyNode.Line), uint64(keyNode.Column))
	}

	var key string
	if err := keyNode.Decode(&key); err != nil {
		return "", Value{}, false, err
	}
	value, err := valueFromYAMLNode(valueNode)
	if err != nil {
		return "", Value{}, false, err
	}
	return key, value, true, nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.inner)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are kept as json.Number
// so that their exact text survives a round trip.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return fmt.Errorf("empty JSON value")
	}

	switch trimmed[0] {
	case '{':
		doc := &Document{}
		if err := json.Unmarshal(trimmed, doc); err != nil {
			return err
		}
		v.inner = doc

	case '[':
		items := []Value{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		v.inner = items

	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()

		var scalar any
		if err := dec.Decode(&scalar); err != nil {
			return err
		}
		v.inner = scalar
	}
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (v Value) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(v.scalar())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (v *Value) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR value")
	}

	const (
		majorTypeArray = 4
		majorTypeMap   = 5
	)

	switch data[0] >> 5 {
	case majorTypeMap:
		doc := &Document{}
		if err := doc.UnmarshalCBOR(data); err != nil {
			return err
		}
		v.inner = doc

	case majorTypeArray:
		items := []Value{}
		if err := cbor.Unmarshal(data, &items); err != nil {
			return err
		}
		v.inner = items

	default:
		var scalar any
		if err := cbor.Unmarshal(data, &scalar); err != nil {
			return err
		}
		v.inner = scalar
	}
	return nil
}
