package htmlstring

import (
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// SafeString holds HTML that needs no further escaping. Renderers produce it
// and embed it verbatim when it is interpolated again.
type SafeString struct {
	value string
}

// String returns the wrapped HTML.
func (s SafeString) String() string {
	return s.value
}

// HTML converts s for use with github.com/google/safehtml and its template
// package.
func (s SafeString) HTML() safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s.value)
}

// UnsafeValue marks a caller-vetted value that must be rendered without
// escaping.
type UnsafeValue struct {
	value any
}

// Unsafe wraps value so renderers emit it as-is.
func Unsafe(value any) UnsafeValue {
	return UnsafeValue{value: value}
}

// Value returns the wrapped value.
func (u UnsafeValue) Value() any {
	return u.value
}

// Finalize trims surrounding whitespace and unwraps s into a plain string,
// ready to be written as a response body.
func Finalize(s SafeString) string {
	return strings.TrimSpace(s.value)
}
