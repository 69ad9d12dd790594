package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	yamlv2 "gopkg.in/yaml.v2"

	"github.com/fakemap/fakemap/pkg/multimap"
)

// yaml.v2 decodes every mapping below a MapSlice as a MapSlice as well, so the
// whole tree keeps its order and duplicates. The slices are then fed through
// the multimap decode contract.
func decodeYAMLv2(data []byte) (*Document, error) {
	var items yamlv2.MapSlice
	if err := yamlv2.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return multimap.Decode[string, Value](&mapSliceAccess{items: items})
}

func encodeYAMLv2(doc *Document) ([]byte, error) {
	items, err := toMapSlice(doc)
	if err != nil {
		return nil, err
	}
	return yamlv2.Marshal(items)
}

type mapSliceAccess struct {
	items yamlv2.MapSlice
}

func (a *mapSliceAccess) SizeHint() (int, bool) { return len(a.items), true }

func (a *mapSliceAccess) NextEntry() (string, Value, bool, error) {
	if len(a.items) == 0 {
		return "", Value{}, false, nil
	}

	item := a.items[0]
	a.items = a.items[1:]

	key, err := yamlv2Key(item.Key)
	if err != nil {
		return "", Value{}, false, err
	}
	value, err := fromYAMLv2(item.Value)
	if err != nil {
		return "", Value{}, false, err
	}
	return key, value, true, nil
}

// yamlv2Key converts a decoded mapping key to its text. yaml.v2 has already
// resolved the scalar, so the text is canonical: "yes" reads back as "true"
// and "1.50" as "1.5". Floats keep a fraction so they never turn into integers.
func yamlv2Key(raw any) (string, error) {
	switch raw := raw.(type) {
	case string:
		return raw, nil
	case nil:
		return "", errNullKey
	case float64:
		return formatFloatKey(raw), nil
	case bool, int, int64, uint64:
		return fmt.Sprint(raw), nil
	default:
		return "", fmt.Errorf("unsupported mapping key of type %T", raw)
	}
}

func formatFloatKey(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(text, ".e") {
		return text
	}
	return text + ".0"
}

func fromYAMLv2(raw any) (Value, error) {
	switch raw := raw.(type) {
	case yamlv2.MapSlice:
		doc, err := multimap.Decode[string, Value](&mapSliceAccess{items: raw})
		if err != nil {
			return Value{}, err
		}
		return NewValue(doc), nil

	case []any:
		items := make([]Value, 0, len(raw))
		for _, elem := range raw {
			value, err := fromYAMLv2(elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, value)
		}
		return NewValue(items), nil

	default:
		return NewValue(raw), nil
	}
}

type mapSliceEncoder struct {
	items yamlv2.MapSlice
}

func (e *mapSliceEncoder) BeginMap(length int) error {
	e.items = make(yamlv2.MapSlice, 0, length)
	return nil
}

func (e *mapSliceEncoder) EncodeEntry(key string, value Value) error {
	converted, err := toYAMLv2(value)
	if err != nil {
		return err
	}
	e.items = append(e.items, yamlv2.MapItem{Key: key, Value: converted})
	return nil
}

func (e *mapSliceEncoder) EndMap() error { return nil }

func toMapSlice(doc *Document) (yamlv2.MapSlice, error) {
	enc := &mapSliceEncoder{}
	if err := doc.Encode(enc); err != nil {
		return nil, err
	}
	return enc.items, nil
}

func toYAMLv2(value Value) (any, error) {
	switch inner := value.inner.(type) {
	case *Document:
		return toMapSlice(inner)

	case []Value:
		items := make([]any, 0, len(inner))
		for _, elem := range inner {
			converted, err := toYAMLv2(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, converted)
		}
		return items, nil

	default:
		return value.scalar(), nil
	}
}

var (
	_ multimap.MapAccess[string, Value]  = (*mapSliceAccess)(nil)
	_ multimap.MapEncoder[string, Value] = (*mapSliceEncoder)(nil)
)
