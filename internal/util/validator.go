package util

import (
	"fmt"
	"regexp"
	"time"
)

// dateLayouts are the accepted transaction date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,          // 2024-01-05T00:00:00+02:00
	"2006-01-02T15:04:05", // 2024-01-05T00:00:00
	"2006-01-02",          // 2024-01-05
}

// ParseDate parses a caller-supplied date string.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// ValidateIncome checks that an income value is a non-negative number.
func ValidateIncome(income float64) error {
	if income < 0 {
		return fmt.Errorf("income must be non-negative, got %f", income)
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the rough shape of an email address.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(pwd string) error {
	if len(pwd) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
