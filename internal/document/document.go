// Package document reads and writes generic structured documents as ordered
// multimaps, so that tools can edit a file without reordering its keys or
// dropping duplicated ones.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	yamlv2 "gopkg.in/yaml.v2"
	yamlv3 "gopkg.in/yaml.v3"

	log "github.com/fakemap/fakemap/internal/logging"
)

// Decode decodes a document in the given concrete format. The top-level value
// must be a mapping. An empty YAML input decodes to an empty document.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{}

	var err error
	switch format {
	case FormatYAML:
		err = yamlv3.Unmarshal(data, &yamlRoot{doc: doc})
	case FormatYAMLv2:
		doc, err = decodeYAMLv2(data)
	case FormatJSON:
		err = json.Unmarshal(data, doc)
	case FormatCBOR:
		err = cbor.Unmarshal(data, doc)
	default:
		return nil, fmt.Errorf("cannot decode format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", format, err)
	}

	log.Debug().Str("format", string(format)).Int("entries", doc.Len()).Msg("decoded document")
	return doc, nil
}

// Encode encodes doc in the given concrete format.
func Encode(doc *Document, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yamlv3.Marshal(doc)
	case FormatYAMLv2:
		out, err = encodeYAMLv2(doc)
	case FormatJSON:
		out, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatCBOR:
		out, err = cbor.Marshal(doc)
	default:
		return nil, fmt.Errorf("cannot encode format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s document: %w", format, err)
	}
	return out, nil
}

// Load reads all of r and decodes it. path is only used to resolve
// FormatAuto.
func Load(r io.Reader, path string, format Format) (*Document, Format, error) {
	resolved := format.Resolve(path)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, resolved, fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debug().Str("path", path).Str("format", string(resolved)).Int("bytes", len(data)).Msg("loading document")
	doc, err := Decode(data, resolved)
	return doc, resolved, err
}

// Write encodes doc and writes it to w.
func Write(w io.Writer, doc *Document, format Format) error {
	out, err := Encode(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// EncodeValue encodes a single value in the given concrete format. Mappings and
// sequences keep their order; scalars are written on their own.
func EncodeValue(value Value, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yamlv3.Marshal(value)
	case FormatYAMLv2:
		var converted any
		converted, err = toYAMLv2(value)
		if err == nil {
			out, err = yamlv2.Marshal(converted)
		}
	case FormatJSON:
		out, err = json.MarshalIndent(value, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatCBOR:
		out, err = cbor.Marshal(value)
	default:
		return nil, fmt.Errorf("cannot encode format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s value: %w", format, err)
	}
	return out, nil
}
