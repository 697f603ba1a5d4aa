// Package data loads the values a layout is rendered with from YAML or JSON
// files.
package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	htmlstring "github.com/goliatone/go-htmlstring"
)

// Load reads path, choosing the decoder by extension (.json, otherwise YAML).
// An empty path yields an empty map.
func Load(path string) (map[string]any, error) {
	attrs, err := LoadOrdered(path)
	if err != nil {
		return nil, err
	}
	return toMap(attrs), nil
}

// LoadOrdered is Load keeping the top-level key order of YAML documents.
// JSON objects come back in sorted key order.
func LoadOrdered(path string) (htmlstring.Attrs, error) {
	if strings.TrimSpace(path) == "" {
		return htmlstring.Attrs{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read %s: %w", path, err)
	}

	var out htmlstring.Attrs
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var m map[string]any
		m, err = DecodeJSON(bytes.NewReader(raw))
		out = fromMap(m)
	default:
		out, err = decodeYAMLOrdered(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("data: %s: %w", path, err)
	}
	return out, nil
}

// DecodeYAML decodes a YAML mapping. Nested mappings become htmlstring.Attrs
// so the order written in the file is the order attributes render in.
func DecodeYAML(r io.Reader) (map[string]any, error) {
	attrs, err := decodeYAMLOrdered(r)
	if err != nil {
		return nil, err
	}
	return toMap(attrs), nil
}

func decodeYAMLOrdered(r io.Reader) (htmlstring.Attrs, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return htmlstring.Attrs{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	root, err := convertNode(&doc)
	if err != nil {
		return nil, err
	}
	switch v := root.(type) {
	case nil:
		return htmlstring.Attrs{}, nil
	case htmlstring.Attrs:
		return v, nil
	default:
		return nil, fmt.Errorf("decode yaml: top level must be a mapping, got %T", root)
	}
}

// DecodeJSON decodes a JSON object. JSON objects carry no reliable order once
// decoded, so nested objects render their attributes in sorted key order.
func DecodeJSON(r io.Reader) (map[string]any, error) {
	var out map[string]any
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func convertNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertNode(n.Content[0])
	case yaml.AliasNode:
		return convertNode(n.Alias)
	case yaml.MappingNode:
		attrs := make(htmlstring.Attrs, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("decode yaml: line %d: mapping keys must be scalars", key.Line)
			}
			value, err := convertNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			attrs.Set(key.Value, value)
		}
		return attrs, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			value, err := convertNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	default:
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode yaml: line %d: %w", n.Line, err)
		}
		return value, nil
	}
}

func toMap(attrs htmlstring.Attrs) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		out[attr.Name] = attr.Value
	}
	return out
}

func fromMap(m map[string]any) htmlstring.Attrs {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make(htmlstring.Attrs, len(keys))
	for i, key := range keys {
		out[i] = htmlstring.Attr{Name: key, Value: m[key]}
	}
	return out
}
