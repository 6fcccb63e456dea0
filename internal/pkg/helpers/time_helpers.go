package helpers

import (
	"fmt"
	"time"
)

// DateTimeLocalLayout is the value format of an HTML datetime-local input.
const DateTimeLocalLayout = "2006-01-02T15:04"

// DateLayout is the value format of an HTML date input.
const DateLayout = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// InSameMonth reports whether t falls in the calendar month and year of ref, compared in ref's location.
func InSameMonth(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// ParseDateTimeLocal parses a datetime-local form value in loc.
func ParseDateTimeLocal(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLocalLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date and time %q: %w", value, err)
	}
	return t, nil
}

// ParseOptionalDate parses a date form value; an empty value yields nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}
