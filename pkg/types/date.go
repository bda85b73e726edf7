package types

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptyDateKeyword is accepted by ParseDateOrEmpty in place of a date.
const EmptyDateKeyword = "empty"

// Date is a calendar date restricted to the brokerage's working range, or
// the Empty date meaning "no date". The zero value is Empty.
// Dates are immutable; NewDate and ParseDate are the only constructors.
type Date struct {
	year  int
	month int
	day   int
	set   bool
}

// NewDate validates year, then month, then day, and returns the concrete
// date. The first failing check determines the returned *InvalidDateError.
func NewDate(year, month, day int) (Date, error) {
	if !IsValidYear(year) {
		return Date{}, &InvalidDateError{Field: "year", Value: year}
	}
	if !IsValidMonth(month) {
		return Date{}, &InvalidDateError{Field: "month", Value: month}
	}
	if !IsValidDay(day, month, year) {
		return Date{}, &InvalidDateError{Field: "day", Value: day}
	}
	return Date{year: year, month: month, day: day, set: true}, nil
}

// ParseDate parses the canonical YYYY-MM-DD form and delegates to NewDate.
func ParseDate(text string) (Date, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, &InvalidDateError{Field: "format", Text: text}
	}
	var fields [3]int
	for i, p := range parts {
		if !allDigits(p) {
			return Date{}, &InvalidDateError{Field: "format", Text: text}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, &InvalidDateError{Field: "format", Text: text}
		}
		fields[i] = n
	}
	return NewDate(fields[0], fields[1], fields[2])
}

// ParseDateOrEmpty returns the Empty date for "" or EmptyDateKeyword and
// otherwise behaves like ParseDate.
func ParseDateOrEmpty(text string) (Date, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == EmptyDateKeyword {
		return EmptyDate(), nil
	}
	return ParseDate(text)
}

// EmptyDate returns the "no date" value.
func EmptyDate() Date {
	return Date{}
}

// IsEmpty reports whether d is the Empty date.
func (d Date) IsEmpty() bool {
	return !d.set
}

// Year returns the year, or 0 for the Empty date.
func (d Date) Year() int { return d.year }

// Month returns the month, or 0 for the Empty date.
func (d Date) Month() int { return d.month }

// Day returns the day, or 0 for the Empty date.
func (d Date) Day() int { return d.day }

// LessOrEqual reports whether d falls on or before other. An Empty other is
// open-ended, so the result is always true. An Empty receiver sorts before
// every concrete date.
func (d Date) LessOrEqual(other Date) bool {
	if other.IsEmpty() {
		return true
	}
	if d.IsEmpty() {
		return true
	}
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day <= other.day
}

// String renders YYYY-MM-DD, or the empty string for the Empty date.
func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text decodes to
// the Empty date.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDateOrEmpty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
