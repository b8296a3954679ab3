package models

import "time"

// DateLayout is the wire format for calendar dates. ISO dates compare
// correctly as strings, which the budget invariant check relies on.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current date in wire format.
func Today() string {
	return time.Now().Format(DateLayout)
}
