package htmlstring

import "fmt"

// Template is a parsed list of literal fragments with one modifier per value
// slot. It is immutable and can be executed concurrently.
type Template struct {
	fragments []string
	modifiers []Modifier
}

// Parse builds a Template from N literal fragments. A ":safe" or ":attrs"
// token at the start of fragment i (i > 0) becomes the modifier of value
// i-1 and is removed from the output. The first fragment has no preceding
// value, so a token there is ErrDanglingModifier.
func Parse(fragments ...string) (*Template, error) {
	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: at least one fragment is required", ErrShapeMismatch)
	}
	if modifier, _, ok := cutModifier(fragments[0]); ok {
		return nil, fmt.Errorf("%w: first fragment starts with the %s modifier", ErrDanglingModifier, modifier)
	}

	t := &Template{
		fragments: make([]string, len(fragments)),
		modifiers: make([]Modifier, len(fragments)-1),
	}
	t.fragments[0] = fragments[0]
	for i := 1; i < len(fragments); i++ {
		modifier, rest, _ := cutModifier(fragments[i])
		t.modifiers[i-1] = modifier
		t.fragments[i] = rest
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(fragments ...string) *Template {
	t, err := Parse(fragments...)
	if err != nil {
		panic(err)
	}
	return t
}

// Slots returns the number of values the template expects.
func (t *Template) Slots() int {
	return len(t.modifiers)
}

// Fragments returns a copy of the literal fragments with modifier tokens
// removed.
func (t *Template) Fragments() []string {
	return append([]string(nil), t.fragments...)
}

// Modifiers returns a copy of the per-slot modifiers.
func (t *Template) Modifiers() []Modifier {
	return append([]Modifier(nil), t.modifiers...)
}

// Execute renders the template with the default renderer.
func (t *Template) Execute(values ...any) (SafeString, error) {
	return defaultRenderer.Execute(t, values...)
}
