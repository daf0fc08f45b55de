// Package parser turns LIKE pattern text into the ir package's element
// sequence, honoring an optional escape character.
package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/coregx/like/ir"
)

// ErrInvalidEscape indicates the escape character was not followed by one
// of '%', '_', or itself, or the pattern ended mid-escape.
var ErrInvalidEscape = errors.New("like: invalid escape sequence")

// SyntaxError wraps a parse failure with the offending pattern text.
type SyntaxError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("like: cannot parse %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Escape bundles the optional escape rune. A zero-value Escape (ok=false)
// means no escape character was configured.
type Escape struct {
	Char rune
	OK   bool
}

// Parse scans pattern left to right, emitting ir.Element values per the
// rules below, and returns SyntaxError wrapping ErrInvalidEscape on failure.
//
// Scanning rules (applied in order, per rune):
//   - If the previous rune was the escape: the current rune must be '%',
//     '_', or the escape rune itself, else fail. Append it to the pending
//     literal buffer.
//   - Else if escape is set and the current rune equals it: enter escape
//     mode, emit nothing.
//   - Else if current is '%': flush the pending literal, emit Any(0, true).
//   - Else if current is '_': flush the pending literal, emit Any(1, false).
//   - Else: append the rune to the pending literal buffer.
//
// After the scan, being left in escape mode is a failure. Any pending
// literal is flushed as a final element.
func Parse(pattern string, esc Escape) ([]ir.Element, error) {
	var elems []ir.Element
	var buf []byte
	inEscape := false

	flush := func() {
		if len(buf) > 0 {
			lit := make([]byte, len(buf))
			copy(lit, buf)
			elems = append(elems, ir.NewLiteral(lit))
			buf = buf[:0]
		}
	}

	for _, r := range pattern {
		switch {
		case inEscape:
			if r != '%' && r != '_' && (!esc.OK || r != esc.Char) {
				return nil, &SyntaxError{Pattern: pattern, Err: ErrInvalidEscape}
			}
			buf = utf8.AppendRune(buf, r)
			inEscape = false

		case esc.OK && r == esc.Char:
			inEscape = true

		case r == '%':
			flush()
			elems = append(elems, ir.NewAny(0, true))

		case r == '_':
			flush()
			elems = append(elems, ir.NewAny(1, false))

		default:
			buf = utf8.AppendRune(buf, r)
		}
	}

	if inEscape {
		return nil, &SyntaxError{Pattern: pattern, Err: ErrInvalidEscape}
	}
	flush()

	return elems, nil
}
