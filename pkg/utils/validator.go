package utils

import (
	"fmt"
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

var mobileRegex = regexp.MustCompile(`^(\+?91[\s-]?|0)?[6-9]\d{9}$`)

// ValidateIndianMobile validates an Indian mobile number, with or without
// the country code or a local leading zero.
func ValidateIndianMobile(phone string) error {
	if !mobileRegex.MatchString(phone) {
		return fmt.Errorf("invalid Indian mobile number: %s", phone)
	}
	return nil
}

// ValidateDate validates a YYYY-MM-DD date string
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD: %s", date)
	}
	return nil
}
