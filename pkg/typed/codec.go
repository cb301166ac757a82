package typed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec defines how a typed value is turned into the bytes a Store keeps.
// Implementations must be deterministic: encoding equal values yields equal bytes.
type Codec interface {
	// Name is the short format name ("json", "yaml").
	Name() string
	// Ext is the file extension used by file-like backends, including the dot.
	Ext() string
	// Marshal encodes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// CodecFor resolves a codec by name. An empty name selects JSON.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "json":
		return NewJSONCodec(false), nil
	case "yaml", "yml":
		return NewYAMLCodec(false), nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// --- JSON Codec ---

// JSONCodec stores values as indented JSON.
type JSONCodec struct {
	// Strict rejects unknown fields and trailing data on decode.
	Strict bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(strict bool) *JSONCodec {
	return &JSONCodec{Strict: strict}
}

// Name implements Codec.
func (c *JSONCodec) Name() string { return "json" }

// Ext implements Codec.
func (c *JSONCodec) Ext() string { return ".json" }

// Marshal encodes v as indented JSON with a trailing newline.
func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a single JSON value into v.
func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if c.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if c.Strict {
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return errors.New("invalid json: trailing data after value")
		}
	}
	return nil
}

// --- YAML Codec ---

// YAMLCodec stores values as YAML documents.
type YAMLCodec struct {
	// Strict rejects unknown fields on decode.
	Strict bool
}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec(strict bool) *YAMLCodec {
	return &YAMLCodec{Strict: strict}
}

// Name implements Codec.
func (c *YAMLCodec) Name() string { return "yaml" }

// Ext implements Codec.
func (c *YAMLCodec) Ext() string { return ".yaml" }

// Marshal encodes v as a YAML document indented by two spaces.
func (c *YAMLCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the first YAML document into v. An empty input leaves v untouched.
func (c *YAMLCodec) Unmarshal(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(c.Strict)
	if err := decoder.Decode(v); err != nil {
		// An empty document decodes to the zero value.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}
