package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errInvalidValue = errors.New("metadata value is not valid JSON")

// ValueKind tells which variant a MetadataValue holds.
type ValueKind int

const (
	// ValueText is a plain string.
	ValueText ValueKind = iota
	// ValueJSON is any other JSON value: object, array, number, boolean or null.
	ValueJSON
)

// MetadataValue is the value of a metadata entry: either Text or raw JSON.
// The zero value is the empty Text.
type MetadataValue struct {
	kind ValueKind
	text string
	raw  json.RawMessage
}

// TextValue returns a Text variant.
func TextValue(s string) MetadataValue {
	return MetadataValue{kind: ValueText, text: s}
}

// JSONValue returns a JSON variant holding a compacted copy of raw.
// raw must be valid JSON.
func JSONValue(raw json.RawMessage) MetadataValue {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return MetadataValue{kind: ValueJSON, raw: append(json.RawMessage(nil), raw...)}
	}
	return MetadataValue{kind: ValueJSON, raw: buf.Bytes()}
}

// Kind returns the variant.
func (v MetadataValue) Kind() ValueKind {
	return v.kind
}

// Text returns the string of a Text variant, or "" for JSON.
func (v MetadataValue) Text() string {
	return v.text
}

// Raw returns the JSON encoding of the value.
func (v MetadataValue) Raw() json.RawMessage {
	if v.kind == ValueText {
		b, _ := json.Marshal(v.text)
		return b
	}
	return v.raw
}

// IsStructured reports whether the value is a JSON object or array.
func (v MetadataValue) IsStructured() bool {
	if v.kind != ValueJSON || len(v.raw) == 0 {
		return false
	}
	return v.raw[0] == '{' || v.raw[0] == '['
}

// IsTruthy reports whether the value counts as present: not null, "", 0 or false.
func (v MetadataValue) IsTruthy() bool {
	if v.kind == ValueText {
		return v.text != ""
	}
	return IsTruthyJSON(v.raw)
}

// IsTruthyJSON reports whether raw is a present value: not absent, null, "", 0 or false.
func IsTruthyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return false
	}
	if raw[0] == '{' || raw[0] == '[' || raw[0] == '"' || raw[0] == 't' {
		return true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return true
}

// CompactString renders the value as compact JSON text.
func (v MetadataValue) CompactString() string {
	return string(v.Raw())
}

// ParseEmbeddedJSON turns a Text whose trimmed form starts with '{' into the
// parsed JSON value. Other values are returned unchanged.
func (v MetadataValue) ParseEmbeddedJSON() (MetadataValue, error) {
	if v.kind != ValueText || !strings.HasPrefix(strings.TrimSpace(v.text), "{") {
		return v, nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(v.text), &parsed); err != nil {
		return v, err
	}
	return JSONValue(json.RawMessage(v.text)), nil
}

// MarshalJSON writes a Text as a JSON string and a JSON variant verbatim.
func (v MetadataValue) MarshalJSON() ([]byte, error) {
	if v.kind == ValueJSON && len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.Raw(), nil
}

// UnmarshalJSON decodes JSON strings as Text and everything else as a JSON variant.
func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}

	if !json.Valid(trimmed) {
		return errInvalidValue
	}
	*v = JSONValue(json.RawMessage(trimmed))
	return nil
}
