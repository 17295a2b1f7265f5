package finding

import (
	"strings"
	"testing"

	"github.com/seolens/seolens/pkg/jsonutil"
)

func TestValueKinds(t *testing.T) {
	if !Absent().IsAbsent() {
		t.Error("zero value should be absent")
	}
	if Scalar(42).Kind() != KindScalar {
		t.Error("Scalar should have scalar kind")
	}
	if Mapping(map[string]any{"a": 1}).Kind() != KindMapping {
		t.Error("Mapping should have mapping kind")
	}
	if Sequence([]any{1, 2}).Kind() != KindSequence {
		t.Error("Sequence should have sequence kind")
	}
}

func TestValueDisplayString(t *testing.T) {
	if got := Absent().DisplayString(); got != "" {
		t.Errorf("absent DisplayString = %q, want empty", got)
	}
	if got := Scalar(200).DisplayString(); got != "200" {
		t.Errorf("scalar DisplayString = %q, want 200", got)
	}
	if got := Scalar("hello").DisplayString(); got != "hello" {
		t.Errorf("scalar DisplayString = %q, want hello", got)
	}
	got := Mapping(map[string]any{"count": 3}).DisplayString()
	if !strings.Contains(got, `"count"`) || !strings.Contains(got, "3") {
		t.Errorf("mapping DisplayString = %q, want compact JSON", got)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want ValueKind
	}{
		{"absent", Absent(), KindAbsent},
		{"scalar string", Scalar("x"), KindScalar},
		{"scalar number", Scalar(12.5), KindScalar},
		{"mapping", Mapping(map[string]any{"total": 5, "name": "img"}), KindMapping},
		{"sequence", Sequence([]any{"a", "b"}), KindSequence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := jsonutil.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out Value
			if err := jsonutil.Unmarshal(data, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Kind() != tt.want {
				t.Errorf("round-trip kind = %v, want %v", out.Kind(), tt.want)
			}
			again, err := jsonutil.Marshal(out)
			if err != nil {
				t.Fatalf("re-marshal: %v", err)
			}
			if string(again) != string(data) {
				t.Errorf("round-trip not stable: %s vs %s", data, again)
			}
		})
	}
}

func TestIsScalarLike(t *testing.T) {
	if !IsScalarLike("s") || !IsScalarLike(1) || !IsScalarLike(1.5) || !IsScalarLike(true) {
		t.Error("scalars should be scalar-like")
	}
	if IsScalarLike(map[string]any{}) || IsScalarLike([]any{}) || IsScalarLike(nil) {
		t.Error("structured values should not be scalar-like")
	}
}
