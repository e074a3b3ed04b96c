package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeAuthEmail lower-cases and trims an email address, returning
// "" when the result is not a parseable address.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

// NormalizeCredentialsInput prepares a submitted email/password pair for
// lookup. Passwords are trimmed, never altered beyond that.
func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}
