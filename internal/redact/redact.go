// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. It helps prevent the accidental leakage of
// credentials, connection strings, and tokens that might be embedded in error
// messages coming back from the database driver or the HTTP stack.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_JWT]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

// Precompiled redaction patterns.
var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., password: ... fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Standard three-part base64url-encoded JWT tokens
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
)

// String redacts sensitive fragments from the given string.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, CredentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+CredentialPlaceholder)
	s = jwtTokenRegex.ReplaceAllString(s, TokenPlaceholder)
	s = emailRegex.ReplaceAllString(s, EmailPlaceholder)
	return s
}

// Error redacts sensitive fragments from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
