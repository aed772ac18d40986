package errors

import (
	"strings"
	"unicode"
)

// maxQuestIDLength bounds identifiers accepted from URLs and flags.
const maxQuestIDLength = 256

// ValidateQuestID validates a quest identifier received from user input
// (URL path segments, CLI arguments). Identifiers inside a dataset are not
// validated; unknown or odd ids there are tolerated by the graph model.
//
// The rules are conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateQuestID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "quest id cannot be empty")
	}
	if len(id) > maxQuestIDLength {
		return New(ErrCodeInvalidInput, "quest id too long (max %d characters)", maxQuestIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "quest id contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a dataset or output file path.
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

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
