package service

import "regexp"

// Field validators for booking input. The patterns are deliberately the same
// permissive ones the legacy frontend was built against; tightening them
// would reject payloads that used to be accepted.
var (
	timePattern  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^(\+\d{1,3})?[\s-]?\(?\d{1,4}\)?[\s-]?\d{1,4}[\s-]?\d{1,9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidTime reports whether s is HH:MM or HH:MM:SS with a 0-23 hour.
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// IsValidDate reports whether s is shaped like YYYY-MM-DD. This is a format
// check only: calendar-invalid strings such as "2025-13-40" pass.
func IsValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number, optionally with a
// leading + and country code. Not a strict E.164 validator.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidEmail reports whether s has the minimal local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
