package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jzelinskie/stringz"
)

// Format is a structured encoding a Document can be read from or written to.
type Format string

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = "auto"

	// FormatYAML is YAML, handled by gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"

	// FormatYAMLv2 is YAML handled by gopkg.in/yaml.v2, for documents that rely
	// on its YAML 1.1 scalar resolution (yes/no booleans, octal 0777).
	FormatYAMLv2 Format = "yamlv2"

	// FormatJSON is JSON.
	FormatJSON Format = "json"

	// FormatCBOR is CBOR (RFC 8949).
	FormatCBOR Format = "cbor"
)

// Formats lists every supported format other than FormatAuto.
var Formats = []Format{FormatYAML, FormatYAMLv2, FormatJSON, FormatCBOR}

// ParseFormat parses a format name. An empty name is FormatAuto.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(stringz.DefaultEmpty(name, string(FormatAuto))))
	switch format {
	case FormatAuto, FormatYAML, FormatYAMLv2, FormatJSON, FormatCBOR:
		return format, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q: expected one of auto, yaml, yamlv2, json, cbor", name)
	}
}

// Resolve returns the concrete format to use for the file at path. Anything
// other than FormatAuto is returned unchanged; FormatAuto is resolved from the
// extension and falls back to YAML.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".cbor":
		return FormatCBOR
	default:
		return FormatYAML
	}
}
