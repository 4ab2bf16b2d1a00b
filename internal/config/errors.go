package config

import "fmt"

// FieldReason classifies why a single field failed validation.
type FieldReason int

const (
	// ReasonMissing means a required field was never set.
	ReasonMissing FieldReason = iota
	// ReasonEmpty means the field was set to an empty value.
	ReasonEmpty
	// ReasonOutOfRange means the value is outside the declared enum range.
	ReasonOutOfRange
	// ReasonInvalid means the value is structurally unusable (e.g. a zero member).
	ReasonInvalid
)

// FieldError reports a presence, emptiness, or range failure on one field.
// It is returned from Build when a single attribute breaks its constraint.
type FieldError struct {
	Field  string
	Reason FieldReason
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("required attribute %s missing", e.Field)
	case ReasonEmpty:
		return fmt.Sprintf("attribute %s empty", e.Field)
	case ReasonOutOfRange:
		return fmt.Sprintf("attribute %s out of range", e.Field)
	default:
		return fmt.Sprintf("attribute %s invalid", e.Field)
	}
}

// StateError reports a structural rule violation that is not tied to a
// single field, such as a group with no sources. It is deliberately a
// distinct type from FieldError so callers can branch with errors.As.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func missingErr(field string) error    { return &FieldError{Field: field, Reason: ReasonMissing} }
func emptyErr(field string) error      { return &FieldError{Field: field, Reason: ReasonEmpty} }
func outOfRangeErr(field string) error { return &FieldError{Field: field, Reason: ReasonOutOfRange} }
func invalidErr(field string) error    { return &FieldError{Field: field, Reason: ReasonInvalid} }

func stateErr(msg string) error { return &StateError{Message: msg} }
