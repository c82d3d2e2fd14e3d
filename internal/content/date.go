package content

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	DisplayDateLayout = "Jan 2, 2006"
	NoDate            = "No date"
)

// ParseDate accepts ISO timestamps as well as display formats such as
// "Jan 24, 2026".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DisplayDate formats t for listings, or NoDate when ok is false.
func DisplayDate(t time.Time, ok bool) string {
	if !ok {
		return NoDate
	}
	return t.Format(DisplayDateLayout)
}
