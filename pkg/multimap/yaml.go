package multimap

import (
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

var (
	_ yamlv3.Marshaler   = OrderedMultiMap[string, int]{}
	_ yamlv3.Unmarshaler = (*OrderedMultiMap[string, int])(nil)
)

// MarshalYAML encodes the map as a YAML mapping whose entries appear in
// insertion order. Duplicate keys are written verbatim.
func (m OrderedMultiMap[K, V]) MarshalYAML() (any, error) {
	enc := &yamlMapEncoder[K, V]{}
	if err := m.Encode(enc); err != nil {
		return nil, err
	}
	return enc.node, nil
}

// UnmarshalYAML is a custom unmarshaller. Entries are inserted in document
// order and duplicate keys are kept, unlike decoding into a Go map.
//
// Aliases are validated with ValidateYAMLAliases before any entry is decoded.
func (m *OrderedMultiMap[K, V]) UnmarshalYAML(node *yamlv3.Node) error {
	if err := ValidateYAMLAliases(node); err != nil {
		return err
	}

	if node.Kind != yamlv3.MappingNode {
		return spiceerrors.NewWithSourceError(
			fmt.Errorf("expected a mapping, found %s", yamlKindName(node)),
			node.Value,
			uint64(node.Line),
			uint64(node.Column),
		)
	}

	decoded, err := Decode[K, V](&yamlMapAccess[K, V]{content: node.Content})
	if err != nil {
		return err
	}

	*m = *decoded
	return nil
}

type yamlMapAccess[K, V any] struct {
	content []*yamlv3.Node
}

func (a *yamlMapAccess[K, V]) SizeHint() (int, bool) { return len(a.content) / 2, true }

func (a *yamlMapAccess[K, V]) NextEntry() (key K, value V, ok bool, err error) {
	if len(a.content) < 2 {
		return key, value, false, nil
	}

	keyNode, valueNode := a.content[0], a.content[1]
	a.content = a.content[2:]

	if err := keyNode.Decode(&key); err != nil {
		return key, value, false, err
	}
	if err := valueNode.Decode(&value); err != nil {
		return key, value, false, err
	}
	return key, value, true, nil
}

type yamlMapEncoder[K, V any] struct {
	node *yamlv3.Node
}

func (e *yamlMapEncoder[K, V]) BeginMap(length int) error {
	e.node = &yamlv3.Node{
		Kind:    yamlv3.MappingNode,
		Tag:     "!!map",
		Content: make([]*yamlv3.Node, 0, 2*length),
	}
	return nil
}

func (e *yamlMapEncoder[K, V]) EncodeEntry(key K, value V) error {
	keyNode, valueNode := &yamlv3.Node{}, &yamlv3.Node{}
	if err := keyNode.Encode(key); err != nil {
		return err
	}
	if err := valueNode.Encode(value); err != nil {
		return err
	}
	e.node.Content = append(e.node.Content, keyNode, valueNode)
	return nil
}

func (e *yamlMapEncoder[K, V]) EndMap() error { return nil }

func yamlKindName(node *yamlv3.Node) string {
	switch node.Kind {
	case yamlv3.DocumentNode:
		return "a document"
	case yamlv3.SequenceNode:
		return "a sequence"
	case yamlv3.ScalarNode:
		return fmt.Sprintf("scalar `%s`", node.Value)
	case yamlv3.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}
