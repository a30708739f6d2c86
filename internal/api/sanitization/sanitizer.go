package sanitization

import (
	"regexp"
	"strings"

	"github.com/hbjsyndicate/syndicate-api/internal/models"
)

var spaceRun = regexp.MustCompile(`\s+`)

// SanitizeString trims the input and collapses internal whitespace runs
func SanitizeString(input string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(input, " "))
}

// SanitizeEmail lowercases and trims an email address
func SanitizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// SanitizeSubmission normalizes a validated submission before it is rendered
// into outgoing mail. The message body is kept verbatim.
func SanitizeSubmission(s models.Submission) models.Submission {
	return models.Submission{
		FirstName:  SanitizeString(s.FirstName),
		LastName:   SanitizeString(s.LastName),
		Email:      SanitizeEmail(s.Email),
		Phone:      SanitizeString(s.Phone),
		Company:    SanitizeString(s.Company),
		Service:    strings.TrimSpace(s.Service),
		Budget:     strings.TrimSpace(s.Budget),
		Timeline:   strings.TrimSpace(s.Timeline),
		Message:    s.Message,
		Newsletter: s.Newsletter,
	}
}
