package ttf

import (
	"errors"
	"fmt"
)

// Sentinel errors for ttf package.
var (
	// ErrNoGlyphs is returned when the font has no glyphs at all.
	ErrNoGlyphs = errors.New("ttf: font has no glyphs")

	// ErrCoordinateRange is returned when a rounded coordinate or metric does
	// not fit the 16-bit fields of the format.
	ErrCoordinateRange = errors.New("ttf: value out of 16-bit range")

	// ErrTooManyGlyphs is returned when the glyph count exceeds 65535.
	ErrTooManyGlyphs = errors.New("ttf: too many glyphs")
)

// IOError is returned when writing the font file fails. No partial file is
// left at Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ttf: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// VerifyError describes an inconsistency found when parsing a font back.
type VerifyError struct {
	Glyph  int
	Reason string
}

func (e *VerifyError) Error() string {
	if e.Glyph < 0 {
		return "ttf: verify: " + e.Reason
	}
	return fmt.Sprintf("ttf: verify glyph %d: %s", e.Glyph, e.Reason)
}
