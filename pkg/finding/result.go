package finding

import (
	"bytes"
	"fmt"

	"github.com/seolens/seolens/pkg/jsonutil"
)

// ErrorKey is the reserved check name holding the single fetch-failure
// entry of a category.
const ErrorKey = "error"

// CheckResult is the outcome of one check: a supporting value (possibly
// absent), a status, and a human-readable message. Message is always set.
type CheckResult struct {
	Value   Value  `json:"value"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Good builds a passing result.
func Good(v Value, msg string) CheckResult {
	return CheckResult{Value: v, Status: StatusGood, Message: msg}
}

// Warn builds a warning result.
func Warn(v Value, msg string) CheckResult {
	return CheckResult{Value: v, Status: StatusWarning, Message: msg}
}

// Bad builds an error result.
func Bad(v Value, msg string) CheckResult {
	return CheckResult{Value: v, Status: StatusError, Message: msg}
}

// Info builds an informational result.
func Info(v Value, msg string) CheckResult {
	return CheckResult{Value: v, Status: StatusInfo, Message: msg}
}

// CategoryResults is an ordered mapping of check name to CheckResult.
// Insertion order is preserved through serialization and display.
// Re-adding an existing name replaces the result in place.
type CategoryResults struct {
	names  []string
	byName map[string]CheckResult
}

// NewCategoryResults returns an empty result set.
func NewCategoryResults() *CategoryResults {
	return &CategoryResults{byName: make(map[string]CheckResult)}
}

// Add records a check result, keeping first-insertion order.
func (r *CategoryResults) Add(name string, res CheckResult) {
	if r.byName == nil {
		r.byName = make(map[string]CheckResult)
	}
	if _, ok := r.byName[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byName[name] = res
}

// Get returns the result recorded under name.
func (r *CategoryResults) Get(name string) (CheckResult, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// Names returns check names in insertion order.
func (r *CategoryResults) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of recorded checks.
func (r *CategoryResults) Len() int { return len(r.names) }

// SetFailure discards any partial results and records the single
// fetch-failure entry under the reserved error key.
func (r *CategoryResults) SetFailure(msg string) {
	r.names = r.names[:0]
	r.byName = make(map[string]CheckResult)
	r.Add(ErrorKey, Bad(Absent(), msg))
}

// Failed reports whether the category holds only the fetch-failure entry.
func (r *CategoryResults) Failed() bool {
	if len(r.names) != 1 || r.names[0] != ErrorKey {
		return false
	}
	res := r.byName[ErrorKey]
	return res.Status == StatusError
}

// MarshalJSON emits a JSON object with members in insertion order.
func (r *CategoryResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonutil.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := jsonutil.Marshal(r.byName[name])
		if err != nil {
			return nil, fmt.Errorf("marshal check %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores members in document order.
func (r *CategoryResults) UnmarshalJSON(data []byte) error {
	dec := jsonutil.NewDecoder(data)
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("category results: expected object, got %v", tok.Kind())
	}
	r.names = nil
	r.byName = make(map[string]CheckResult)
	for dec.PeekKind() != '}' {
		keyTok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		name := keyTok.String()
		raw, err := dec.ReadValue()
		if err != nil {
			return fmt.Errorf("read check %q: %w", name, err)
		}
		var res CheckResult
		if err := jsonutil.Unmarshal(raw, &res); err != nil {
			return fmt.Errorf("decode check %q: %w", name, err)
		}
		r.Add(name, res)
	}
	_, err = dec.ReadToken()
	return err
}

// AuditResults maps category name to its results, preserving the order
// categories were recorded in.
type AuditResults struct {
	categories []string
	byCategory map[string]*CategoryResults
}

// NewAuditResults returns an empty audit result set.
func NewAuditResults() *AuditResults {
	return &AuditResults{byCategory: make(map[string]*CategoryResults)}
}

// Set records a category's results, keeping first-insertion order.
func (a *AuditResults) Set(category string, results *CategoryResults) {
	if a.byCategory == nil {
		a.byCategory = make(map[string]*CategoryResults)
	}
	if _, ok := a.byCategory[category]; !ok {
		a.categories = append(a.categories, category)
	}
	a.byCategory[category] = results
}

// Get returns the results for category.
func (a *AuditResults) Get(category string) (*CategoryResults, bool) {
	res, ok := a.byCategory[category]
	return res, ok
}

// Categories returns category names in insertion order.
func (a *AuditResults) Categories() []string {
	out := make([]string, len(a.categories))
	copy(out, a.categories)
	return out
}

// Len returns the number of categories recorded.
func (a *AuditResults) Len() int { return len(a.categories) }

// MarshalJSON emits categories in insertion order.
func (a *AuditResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range a.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonutil.Marshal(cat)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := a.byCategory[cat].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal category %q: %w", cat, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores categories in document order.
func (a *AuditResults) UnmarshalJSON(data []byte) error {
	dec := jsonutil.NewDecoder(data)
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("audit results: expected object, got %v", tok.Kind())
	}
	a.categories = nil
	a.byCategory = make(map[string]*CategoryResults)
	for dec.PeekKind() != '}' {
		keyTok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		cat := keyTok.String()
		raw, err := dec.ReadValue()
		if err != nil {
			return fmt.Errorf("read category %q: %w", cat, err)
		}
		res := NewCategoryResults()
		if err := res.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("decode category %q: %w", cat, err)
		}
		a.Set(cat, res)
	}
	_, err = dec.ReadToken()
	return err
}
