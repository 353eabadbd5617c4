// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	maxUsernameLen = 150
	maxNicknameLen = 30
	minPasswordLen = 8
)

var (
	// Letters, digits and @/./+/-/_ only, same alphabet the account store enforces.
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidateUsername checks if a username meets format requirements
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username %q is invalid: only letters, digits, and @/./+/-/_ are allowed", username)
	}

	if utf8.RuneCountInString(username) > maxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLen)
	}

	return nil
}

// ValidateNickname checks if a nickname meets format requirements
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}

	// Limits count characters, not bytes; nicknames are often multibyte.
	if utf8.RuneCountInString(nickname) > maxNicknameLen {
		return fmt.Errorf("nickname must not exceed %d characters", maxNicknameLen)
	}

	return nil
}

// ValidatePassword checks if a password meets complexity requirements.
// Rules are evaluated in a fixed order and the first violation is returned,
// so callers surface one message per attempt.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	if !upperRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !lowerRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !digitRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}

	if !specialRe.MatchString(password) {
		return fmt.Errorf(`password must contain at least one special character (!@#$%%^&*(),.?":{}|<>)`)
	}

	return nil
}
