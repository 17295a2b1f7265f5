// Package jsonutil wraps the go-json-experiment encoder behind the small
// surface the rest of the codebase needs: marshal, unmarshal, indented
// output, and token-level decoding for order-preserving structures.
package jsonutil

import (
	"bytes"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshal returns the JSON encoding of v. Map keys are emitted in sorted
// order so repeated runs produce identical output.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true))
}

// MarshalIndent returns the JSON encoding of v with the given indent.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true), jsontext.WithIndent(indent))
}

// Unmarshal parses JSON data into v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MarshalWrite encodes v to w.
func MarshalWrite(w io.Writer, v any) error {
	return json.MarshalWrite(w, v, json.Deterministic(true))
}

// MarshalWriteIndent encodes v to w with the given indent.
func MarshalWriteIndent(w io.Writer, v any, indent string) error {
	return json.MarshalWrite(w, v, json.Deterministic(true), jsontext.WithIndent(indent))
}

// UnmarshalRead decodes a single JSON value from r into v.
func UnmarshalRead(r io.Reader, v any) error {
	return json.UnmarshalRead(r, v)
}

// NewDecoder returns a token-level decoder over data. Callers that need
// to preserve object key order read tokens directly instead of decoding
// into a map.
func NewDecoder(data []byte) *jsontext.Decoder {
	return jsontext.NewDecoder(bytes.NewReader(data))
}
