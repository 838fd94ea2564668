package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format of schema descriptions.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Parse decodes a schema description in the given format.
// The result is not compiled yet.
func Parse(data []byte, format Format) (*Schema, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func ParseJSON(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode json schema: %w", err)
	}
	return s, nil
}

func ParseYAML(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode yaml schema: %w", err)
	}
	return s, nil
}

// Marshal encodes s in the given format, preserving field order.
func Marshal(s *Schema, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		return yaml.Marshal(s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// MarshalJSON writes fields as an object in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nf := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nf.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nf.Field)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", nf.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the key order of the document.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotAMapping
	}

	*s = Schema{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		f := &Field{}
		if err := dec.Decode(f); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if _, exists := s.index[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		s.Set(name, f)
	}

	_, err = dec.Token()
	return err
}

// MarshalYAML emits a mapping node so that key order survives encoding.
func (s *Schema) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, nf := range s.fields {
		val := &yaml.Node{}
		if err := val.Encode(nf.Field); err != nil {
			return nil, fmt.Errorf("field %q: %w", nf.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: nf.Name},
			val,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node keeping the key order of the document.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return ErrNotAMapping
	}

	*s = Schema{index: make(map[string]int, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		f := &Field{}
		if err := node.Content[i+1].Decode(f); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if _, exists := s.index[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		s.Set(name, f)
	}
	return nil
}
