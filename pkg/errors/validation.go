package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds widget ids and kind names. Ids end up in storage keys,
// DOM ids, and URLs.
const maxIDLength = 128

// widgetIDRegex matches ids the browser can use verbatim as element ids.
var widgetIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateWidgetID validates a widget id for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No path separators
//   - Maximum length of 128 characters
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "widget id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "widget id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "widget id contains invalid characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "widget id cannot contain path separators")
	}
	if !widgetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid widget id: %q", id)
	}
	return nil
}

// kindNameRegex matches kebab-case kind names such as "cash-flow".
var kindNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateKindName validates a widget kind name.
func ValidateKindName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidKind, "kind name cannot be empty")
	}
	if len(name) > maxIDLength {
		return New(ErrCodeInvalidKind, "kind name too long (max %d characters)", maxIDLength)
	}
	if !kindNameRegex.MatchString(name) {
		return New(ErrCodeInvalidKind, "invalid kind name: %q (want kebab-case)", name)
	}
	return nil
}

// ValidateBoardName validates a board name used to build storage keys.
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "board name cannot be empty")
	}
	if len(name) > maxIDLength {
		return New(ErrCodeInvalidInput, "board name too long (max %d characters)", maxIDLength)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "board name contains invalid characters: %q", name)
	}
	return nil
}

// ValidatePath validates a file path for import and export.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
	return nil
}
