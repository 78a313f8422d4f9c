package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// EmailPattern matches a general well-formed email address
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8

	// Name length bounds
	NameMinLength = 2
	NameMaxLength = 100
)

var emailRegex = regexp.MustCompile(EmailPattern)

// IsValidEmail checks that the value is a well-formed email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsInstitutionalEmail checks that the email belongs to the campus domain.
// The domain is compared case-insensitively and must match the full
// domain part, so "student@university.edu.evil.com" is rejected.
func IsInstitutionalEmail(email, domain string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" || !IsValidEmail(email) {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return email[at+1:] == strings.TrimPrefix(domain, "@")
}

// IsValidPassword checks the minimum password policy: length plus at least
// one letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsValidName checks display name length bounds
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
