package user

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinUsernameLength = 3

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type Availability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// NormalizeUsername trims and lowercases input the way the signup form does.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}
	return nil
}
