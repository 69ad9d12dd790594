package testutil

import (
	"fmt"
	"strings"
)

// AliasFanOutYAML returns a YAML mapping with one anchored sequence per level.
// Level 0 holds width scalars and every later level holds width aliases to the
// level before it, so the last level expands to width^levels scalars.
func AliasFanOutYAML(levels, width int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "l0: &l0 [%s]\n", repeatJoined("x", width))
	for level := 1; level < levels; level++ {
		fmt.Fprintf(&sb, "l%d: &l%d [%s]\n", level, level, repeatJoined(fmt.Sprintf("*l%d", level-1), width))
	}
	return sb.String()
}

func repeatJoined(item string, count int) string {
	items := make([]string, count)
	for i := range items {
		items[i] = item
	}
	return strings.Join(items, ", ")
}
