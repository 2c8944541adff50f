package shortcut

import (
	"fmt"
	"regexp"
	"slices"
)

// validNamePattern matches valid shortcut names (alphanumeric, hyphen, underscore).
var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// reservedNames can never be used as a filename in the shortcut directory.
var reservedNames = []string{"..", ".", "/", ""}

// Validate reports whether name is usable as a shortcut name.
func Validate(name string) bool {
	return ValidateName(name) == nil
}

// ValidateName checks if a shortcut name is valid and safe.
// The returned error wraps ErrEmptyInput or ErrInvalidName.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: shortcut name cannot be empty", ErrEmptyInput)
	}

	if !validNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, numbers, underscores, and hyphens", ErrInvalidName, name)
	}

	if slices.Contains(reservedNames, name) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}

	return nil
}
