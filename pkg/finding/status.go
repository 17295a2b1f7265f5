// Package finding defines the check-result data model shared by the
// auditors, the scoring engine, and the report writers.
package finding

import "fmt"

// Status classifies the outcome of a single check.
type Status string

const (
	// StatusGood means the check passed.
	StatusGood Status = "good"

	// StatusWarning means the check found something suboptimal.
	StatusWarning Status = "warning"

	// StatusError means the check failed or the page could not be fetched.
	StatusError Status = "error"

	// StatusInfo is informational only and never affects scoring.
	StatusInfo Status = "info"
)

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusGood, StatusWarning, StatusError, StatusInfo:
		return true
	}
	return false
}

// String returns the wire form of the status.
func (s Status) String() string { return string(s) }

// Rank orders statuses for display, most severe first.
func (s Status) Rank() int {
	switch s {
	case StatusError:
		return 0
	case StatusWarning:
		return 1
	case StatusGood:
		return 2
	case StatusInfo:
		return 3
	default:
		return 4
	}
}

// ParseStatus converts a wire string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
