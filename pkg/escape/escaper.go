package escape

import (
	"github.com/google/safehtml"
)

// Escaper maps untrusted text to a string that is safe to embed in HTML
// element content and double-quoted attribute values.
type Escaper interface {
	Escape(s string) string
}

// Func adapts a plain function to the Escaper interface.
type Func func(s string) string

// Escape calls f(s).
func (f Func) Escape(s string) string {
	return f(s)
}

type entities struct{}

// Entities returns the default escaper. It encodes & < > " and ' as HTML
// entities and replaces invalid UTF-8 sequences, leaving everything else
// untouched so the rendered text reads exactly like the input.
func Entities() Escaper {
	return entities{}
}

func (entities) Escape(s string) string {
	if s == "" {
		return ""
	}
	return safehtml.HTMLEscaped(s).String()
}
