package config

import (
	"fmt"
	"strings"
)

// StatelessIconType describes how a sources group renders when every
// source in it is stateless.
type StatelessIconType int

const (
	// IconNone renders the group without any special icon.
	IconNone StatelessIconType = 0
	// IconPrivacy renders the group with the privacy icon.
	IconPrivacy StatelessIconType = 1
)

// NewStatelessIconType parses a StatelessIconType from its string form.
// The empty string maps to IconNone, matching the document default.
func NewStatelessIconType(s string) (StatelessIconType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return IconNone, nil
	case "privacy":
		return IconPrivacy, nil
	default:
		return IconNone, fmt.Errorf("invalid stateless icon type: %s", s)
	}
}

// IsValid reports whether the value is one of the declared icon types.
func (t StatelessIconType) IsValid() bool {
	return t == IconNone || t == IconPrivacy
}

// String returns the string representation used in documents and output.
func (t StatelessIconType) String() string {
	switch t {
	case IconPrivacy:
		return "privacy"
	default:
		return "none"
	}
}

// MarshalJSON implements json.Marshaler.
func (t StatelessIconType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *StatelessIconType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid stateless icon type JSON: %s", s)
	}
	parsed, err := NewStatelessIconType(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
