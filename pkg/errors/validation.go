package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// nameRegex matches snippet names: letters, digits, dot, dash, underscore.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName validates a snippet name for safety and correctness.
// Names become file names and database keys, so the rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - Letters, digits, '.', '-' and '_' only, not starting with '.'
//   - No ".." sequences
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "name contains invalid characters: %q", "..")
	}

	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid name: %q", name)
	}

	return nil
}
