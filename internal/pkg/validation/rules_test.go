package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"jane@university.edu",
		"jane.doe+tag@sub.university.edu",
		"  jane@university.edu  ",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"jane",
		"jane@",
		"@university.edu",
		"jane@university",
		"jane doe@university.edu",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "email %q", email)
	}
}

func TestIsInstitutionalEmail(t *testing.T) {
	assert.True(t, IsInstitutionalEmail("jane@university.edu", "university.edu"))
	assert.True(t, IsInstitutionalEmail("JANE@UNIVERSITY.EDU", "university.edu"))
	assert.True(t, IsInstitutionalEmail("jane@university.edu", "@university.edu"))

	// Full domain part must match, not just a prefix.
	assert.False(t, IsInstitutionalEmail("jane@university.edu.evil.com", "university.edu"))
	assert.False(t, IsInstitutionalEmail("jane@sub.university.edu", "university.edu"))
	assert.False(t, IsInstitutionalEmail("jane@gmail.com", "university.edu"))
	assert.False(t, IsInstitutionalEmail("jane@university.edu", ""))
	assert.False(t, IsInstitutionalEmail("not-an-email", "university.edu"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Secret123"))
	assert.True(t, IsValidPassword("a1234567"))

	assert.False(t, IsValidPassword("Short1"))
	assert.False(t, IsValidPassword("onlyletters"))
	assert.False(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword(""))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Jo"))
	assert.True(t, IsValidName("Jane Doe"))
	assert.True(t, IsValidName(strings.Repeat("a", NameMaxLength)))

	assert.False(t, IsValidName("J"))
	assert.False(t, IsValidName("   "))
	assert.False(t, IsValidName(strings.Repeat("a", NameMaxLength+1)))
}
