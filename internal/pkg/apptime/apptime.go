// Package apptime provides the timestamp type used on the wire: a local
// date-time without zone offset, e.g. "2026-11-01T12:00:00".
package apptime

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for timestamps.
const Layout = "2006-01-02T15:04:05"

// LocalDateTime marshals as a zone-less local timestamp.
type LocalDateTime struct {
	time.Time
}

// New wraps a time.Time.
func New(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// Ptr wraps a time.Time as a pointer, for omittable DTO fields.
func Ptr(t time.Time) *LocalDateTime {
	ldt := New(t)
	return &ldt
}

// MarshalJSON renders the timestamp without a zone offset.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(Layout) + `"`), nil
}

// UnmarshalJSON accepts zone-less timestamps, with or without fractional
// seconds.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	for _, layout := range []string{Layout, Layout + ".999999999"} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q, expected format %s", s, Layout)
}
