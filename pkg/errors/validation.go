package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates an input file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateIndent validates a JSON indent string.
// Only spaces and tabs are allowed, at most 8 of them.
func ValidateIndent(indent string) error {
	if len(indent) > 8 {
		return New(ErrCodeInvalidInput, "indent too long (max 8 characters)")
	}
	if strings.Trim(indent, " \t") != "" {
		return New(ErrCodeInvalidInput, "indent may only contain spaces and tabs: %q", indent)
	}
	return nil
}

// ValidateChoice checks that value is one of the allowed options.
// The field name is used in the error message.
func ValidateChoice(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
