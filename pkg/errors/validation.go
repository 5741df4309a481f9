package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a template or asset name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks,
// since capsule IDs and asset names end up in file paths and registry keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidKind, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidKind, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKind, "name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidKind, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// symbolKindRegex matches valid symbol kind identifiers: lowercase words
// optionally separated by single hyphens (e.g. "notehead", "half-rest").
var symbolKindRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateSymbolKind validates a symbol kind identifier.
func ValidateSymbolKind(kind string) error {
	if err := ValidateName(kind); err != nil {
		return err
	}

	if !symbolKindRegex.MatchString(kind) {
		return New(ErrCodeInvalidKind, "invalid symbol kind: %q", kind)
	}

	return nil
}

// ValidateAssetName validates a morph source asset name. Asset names must be
// simple basenames without path components so they resolve strictly inside
// the configured asset root.
func ValidateAssetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidKind, "asset name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidKind, "asset name cannot be a hidden file")
	}

	return nil
}
