// Package timeutil fixes the timestamp formats used in API bodies and logs.
package timeutil

import "time"

const (
	// RFC3339Millis is the API body format.
	RFC3339Millis = "2006-01-02T15:04:05.000Z"
	// RFC3339Micros is the log timestamp format.
	RFC3339Micros = "2006-01-02T15:04:05.000000Z"
)

// Time marshals as UTC with millisecond precision. The zero time marshals
// as null because records from the card platform API may lack timestamps.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. null and "" leave t unchanged.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
