package multimap

import (
	"errors"
	"fmt"
	"math"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/fakemap/fakemap/pkg/spiceerrors"
)

// yaml.v3 enforces these limits inside a single decoder. Every nested
// Node.Decode starts a fresh decoder, so they are checked here once for the
// whole node graph instead.
const (
	aliasRatioRangeLow  = 400_000
	aliasRatioRangeHigh = 4_000_000
	minAliasCount       = 100
	minExpandedCount    = 1000
)

// allowedAliasRatio is the share of decoded nodes which may come from alias
// expansion. It shrinks as the expanded document grows.
func allowedAliasRatio(expanded int) float64 {
	switch {
	case expanded <= aliasRatioRangeLow:
		return 0.99
	case expanded >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(expanded-aliasRatioRangeLow)/float64(aliasRatioRangeHigh-aliasRatioRangeLow))
	}
}

// ValidateYAMLAliases rejects a node graph in which an anchor contains an
// alias to itself, or in which alias expansion would blow up the number of
// decoded nodes. Both errors carry the source position of the offending node.
//
// UnmarshalYAML implementations that decode their children through
// Node.Decode should call it before decoding anything.
func ValidateYAMLAliases(node *yamlv3.Node) error {
	counter := &yamlNodeCounter{
		expanded:  map[*yamlv3.Node]int{},
		expanding: map[*yamlv3.Node]bool{},
	}

	expanded, err := counter.expandedSize(node)
	if err != nil {
		return err
	}

	aliased := expanded - literalSize(node)
	if aliased > minAliasCount && expanded > minExpandedCount && float64(aliased)/float64(expanded) > allowedAliasRatio(expanded) {
		return spiceerrors.NewWithSourceError(
			errors.New("document contains excessive aliasing"),
			node.Value,
			uint64(node.Line),
			uint64(node.Column),
		)
	}
	return nil
}

type yamlNodeCounter struct {
	expanded  map[*yamlv3.Node]int
	expanding map[*yamlv3.Node]bool
}

// expandedSize returns how many nodes decoding node visits once every alias is
// followed. Counts saturate at math.MaxInt32.
func (c *yamlNodeCounter) expandedSize(node *yamlv3.Node) (int, error) {
	if size, ok := c.expanded[node]; ok {
		return size, nil
	}

	size := 1
	if node.Kind == yamlv3.AliasNode {
		if node.Alias != nil {
			if c.expanding[node.Alias] {
				return 0, spiceerrors.NewWithSourceError(
					fmt.Errorf("anchor '%s' value contains itself", node.Value),
					node.Value,
					uint64(node.Line),
					uint64(node.Column),
				)
			}
			target, err := c.expandedSize(node.Alias)
			if err != nil {
				return 0, err
			}
			size = saturatingAdd(size, target)
		}
	} else {
		c.expanding[node] = true
		for _, child := range node.Content {
			childSize, err := c.expandedSize(child)
			if err != nil {
				return 0, err
			}
			size = saturatingAdd(size, childSize)
		}
		delete(c.expanding, node)
	}

	c.expanded[node] = size
	return size, nil
}

// literalSize counts the nodes written in the source, not following aliases.
func literalSize(node *yamlv3.Node) int {
	size := 1
	if node.Kind != yamlv3.AliasNode {
		for _, child := range node.Content {
			size = saturatingAdd(size, literalSize(child))
		}
	}
	return size
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt32-b {
		return math.MaxInt32
	}
	return a + b
}
