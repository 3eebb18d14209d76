package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for font package.
var (
	// ErrEmptyFont is returned when assembly is attempted without any glyph
	// besides .notdef.
	ErrEmptyFont = errors.New("font: no glyphs to assemble")

	// ErrInvalidCodePoint is returned for negative, surrogate or out of range
	// code points.
	ErrInvalidCodePoint = errors.New("font: invalid code point")
)

// DuplicateCodePointError is returned when two glyphs claim the same code
// point.
type DuplicateCodePointError struct {
	CodePoint rune

	// First and Second are the input positions of the conflicting glyphs.
	First  int
	Second int
}

func (e *DuplicateCodePointError) Error() string {
	return fmt.Sprintf("font: code point U+%04X claimed by glyphs %d and %d", e.CodePoint, e.First, e.Second)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "font: invalid config." + e.Field + ": " + e.Reason
}
