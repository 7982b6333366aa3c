package errors

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTextLen is the largest input text the service accepts, in bytes.
const MaxTextLen = 1 << 20

// ValidateText validates input text submitted for analysis.
//
// The rules are intentionally conservative:
//   - No empty input
//   - Maximum length of [MaxTextLen] bytes
//   - Must be valid UTF-8 (spans are counted in codepoints, so
//     malformed input would produce misaligned graphs)
func ValidateText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}

	if len(text) > MaxTextLen {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", MaxTextLen)
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}

	return nil
}

// ValidateRecordID validates an archive record identifier. Record IDs
// are UUIDs assigned at run time.
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record id cannot be empty")
	}

	if err := uuid.Validate(id); err != nil {
		return New(ErrCodeInvalidInput, "invalid record id: %q", id)
	}

	return nil
}

// renderFormats is the closed set of render output formats.
var renderFormats = map[string]bool{
	"dot": true,
	"svg": true,
	"png": true,
}

// ValidateRenderFormat validates a diagram output format name.
func ValidateRenderFormat(format string) error {
	if !renderFormats[format] {
		return New(ErrCodeInvalidInput, "unsupported render format: %q (want dot, svg, or png)", format)
	}
	return nil
}
