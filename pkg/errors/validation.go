package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a user supplied output or input path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// keyRegex matches design keys and screen identifiers: lowercase words
// separated by single dashes, digits allowed.
var keyRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateKey validates a design key or screen identifier.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "key cannot be empty")
	}
	if len(key) > 64 {
		return New(ErrCodeInvalidInput, "key too long (max 64 characters): %q", key)
	}
	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid key %q (want lowercase words separated by '-')", key)
	}
	return nil
}

// ValidateName validates a display or page name. Names may contain any
// printable text including emoji but no control characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters: %q", name)
		}
	}
	return nil
}
