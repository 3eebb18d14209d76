package strokefont

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a session command is not allowed in the
// session's current state.
var ErrInvalidState = errors.New("strokefont: command not allowed in current state")

// InputError reports malformed stroke or sheet input.
// Stroke is -1 when the problem is not tied to a single stroke.
type InputError struct {
	CodePoint rune
	Stroke    int
	Reason    string
}

func (e *InputError) Error() string {
	switch {
	case e.CodePoint == 0:
		return "strokefont: invalid input: " + e.Reason
	case e.Stroke < 0:
		return fmt.Sprintf("strokefont: invalid input for U+%04X: %s", e.CodePoint, e.Reason)
	default:
		return fmt.Sprintf("strokefont: invalid input for U+%04X stroke %d: %s", e.CodePoint, e.Stroke, e.Reason)
	}
}

// ConfigError reports an invalid builder configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("strokefont: invalid config.%s: %s", e.Field, e.Reason)
}
