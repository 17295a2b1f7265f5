package finding

import (
	"bytes"
	"fmt"

	"github.com/spf13/cast"

	"github.com/seolens/seolens/pkg/jsonutil"
)

// ValueKind discriminates the shapes a check value can take.
type ValueKind int

const (
	// KindAbsent is the zero kind: the check produced no supporting value.
	KindAbsent ValueKind = iota

	// KindScalar holds a single string, number, or bool.
	KindScalar

	// KindMapping holds string-keyed structured details.
	KindMapping

	// KindSequence holds an ordered list of items.
	KindSequence
)

// Value is the tagged payload attached to a check result. The zero Value
// is absent. Values marshal to their natural JSON shape (absent -> null)
// and re-derive their kind from the JSON shape on unmarshal.
type Value struct {
	kind     ValueKind
	scalar   any
	mapping  map[string]any
	sequence []any
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// Scalar wraps a single string, number, or bool.
func Scalar(v any) Value { return Value{kind: KindScalar, scalar: v} }

// Mapping wraps string-keyed details.
func Mapping(m map[string]any) Value { return Value{kind: KindMapping, mapping: m} }

// Sequence wraps an ordered list.
func Sequence(s []any) Value { return Value{kind: KindSequence, sequence: s} }

// Kind reports the value's shape.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the value carries no payload.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// ScalarValue returns the scalar payload, or nil for other kinds.
func (v Value) ScalarValue() any {
	if v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// MappingValue returns the mapping payload, or nil for other kinds.
func (v Value) MappingValue() map[string]any {
	if v.kind != KindMapping {
		return nil
	}
	return v.mapping
}

// SequenceValue returns the sequence payload, or nil for other kinds.
func (v Value) SequenceValue() []any {
	if v.kind != KindSequence {
		return nil
	}
	return v.sequence
}

// DisplayString renders the value for flat outputs (CSV cells, console).
// Absent renders empty, scalars via cast, structured payloads as compact
// JSON. The rendering is intentionally lossy.
func (v Value) DisplayString() string {
	switch v.kind {
	case KindScalar:
		return cast.ToString(v.scalar)
	case KindMapping, KindSequence:
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("%v", v.payload())
		}
		return string(data)
	default:
		return ""
	}
}

func (v Value) payload() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindMapping:
		return v.mapping
	case KindSequence:
		return v.sequence
	default:
		return nil
	}
}

// MarshalJSON emits the natural JSON payload for the value's kind.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindAbsent {
		return []byte("null"), nil
	}
	return jsonutil.Marshal(v.payload())
}

// UnmarshalJSON derives the kind from the JSON shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty value payload")
	}
	switch trimmed[0] {
	case 'n':
		*v = Value{}
		return nil
	case '{':
		var m map[string]any
		if err := jsonutil.Unmarshal(trimmed, &m); err != nil {
			return fmt.Errorf("decode mapping value: %w", err)
		}
		*v = Mapping(m)
		return nil
	case '[':
		var s []any
		if err := jsonutil.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode sequence value: %w", err)
		}
		*v = Sequence(s)
		return nil
	default:
		var sc any
		if err := jsonutil.Unmarshal(trimmed, &sc); err != nil {
			return fmt.Errorf("decode scalar value: %w", err)
		}
		*v = Scalar(sc)
		return nil
	}
}

// IsScalarLike reports whether x renders sensibly as a single detail line.
// Strings count; nested maps and non-string slices do not.
func IsScalarLike(x any) bool {
	switch x.(type) {
	case nil:
		return false
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
