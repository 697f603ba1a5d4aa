package htmlstring

import "errors"

var (
	// ErrShapeMismatch reports a template whose fragment and value counts
	// do not line up (N fragments need exactly N-1 values).
	ErrShapeMismatch = errors.New("htmlstring: fragment/value count mismatch")
	// ErrDanglingModifier reports a modifier token with no preceding value.
	ErrDanglingModifier = errors.New("htmlstring: modifier without a preceding value")
	// ErrModifierMisuse reports a modifier applied to a value it cannot
	// handle, such as :attrs on a string.
	ErrModifierMisuse = errors.New("htmlstring: modifier misuse")
	// ErrUnsupportedValue reports a value outside the supported kinds.
	ErrUnsupportedValue = errors.New("htmlstring: unsupported value")
	// ErrInvalidAttributeName reports an attribute key that cannot be
	// emitted as an HTML attribute name.
	ErrInvalidAttributeName = errors.New("htmlstring: invalid attribute name")
)
