package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches a single Java-style identifier segment.
var identifierRegex = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)

// ValidateIdentifier validates a simple type, member or parameter name.
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidName, "name too long (max 256 characters)")
	}
	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid identifier: %q", name)
	}
	return nil
}

// ValidateQualifiedName validates a dotted package or type name such as
// "java.util.Map". Each segment must be an identifier.
func ValidateQualifiedName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "qualified name cannot be empty")
	}
	if len(name) > 1024 {
		return New(ErrCodeInvalidName, "qualified name too long (max 1024 characters)")
	}
	for _, seg := range strings.Split(name, ".") {
		if !identifierRegex.MatchString(seg) {
			return New(ErrCodeInvalidName, "invalid qualified name: %q", name)
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// Diagram paths are derived from package names, so a valid path never
// leaves the destination directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
