package quote

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks bad client data, negative values or out-of-range rates.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRender marks a failure to assemble the document or produce its bytes.
	ErrRender = errors.New("render failed")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// RenderErrorf wraps ErrRender with a message. A %w verb in format is kept.
func RenderErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRender}, args...)...)
}
