package like

import (
	"errors"
	"fmt"

	"github.com/coregx/like/parser"
)

// ErrInvalidEscape is returned (wrapped in a *CompileError) when the escape
// character in a pattern is not followed by '%', '_', or itself, or when the
// pattern ends mid-escape.
var ErrInvalidEscape = parser.ErrInvalidEscape

// CompileError reports why Compile could not build a LikeMatcher from a
// given pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("like: compile %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying sentinel error, so errors.Is(err,
// like.ErrInvalidEscape) works against a *CompileError.
func (e *CompileError) Unwrap() error {
	return e.Err
}

func wrapCompileError(pattern string, err error) error {
	if err == nil {
		return nil
	}
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return &CompileError{Pattern: pattern, Err: syn.Err}
	}
	return &CompileError{Pattern: pattern, Err: err}
}
