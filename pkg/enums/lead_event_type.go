package enums

import "fmt"

// LeadEventType tags a lead-capture notification. Every checkout submission
// produces exactly one attempt event followed by one terminal event.
type LeadEventType string

const (
	LeadEventAttempt LeadEventType = "attempt"
	LeadEventSuccess LeadEventType = "success"
	LeadEventFailure LeadEventType = "failure"
)

var validLeadEventTypes = []LeadEventType{
	LeadEventAttempt,
	LeadEventSuccess,
	LeadEventFailure,
}

// String implements fmt.Stringer.
func (l LeadEventType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadEventType.
func (l LeadEventType) IsValid() bool {
	for _, candidate := range validLeadEventTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadEventType converts raw input into a LeadEventType.
func ParseLeadEventType(value string) (LeadEventType, error) {
	for _, candidate := range validLeadEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead event type %q", value)
}
