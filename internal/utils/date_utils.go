package utils

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDateValue parses a YYYY-MM-DD date string.
func ParseDateValue(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
