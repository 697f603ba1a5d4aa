package htmlstring

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-htmlstring/pkg/escape"
)

// Renderer resolves values and joins them with template fragments. The zero
// value is not usable; build one with New.
type Renderer struct {
	escaper escape.Escaper
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEscaper replaces the default entity escaper. A nil escaper is ignored.
func WithEscaper(escaper escape.Escaper) Option {
	return func(r *Renderer) {
		if escaper != nil {
			r.escaper = escaper
		}
	}
}

// New constructs a Renderer. Without options it escapes with
// escape.Entities.
func New(options ...Option) *Renderer {
	r := &Renderer{escaper: escape.Entities()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Default returns the renderer used by the package-level helpers.
func Default() *Renderer {
	return defaultRenderer
}

// Render parses fragments and executes them with values using the default
// renderer.
func Render(fragments []string, values ...any) (SafeString, error) {
	return defaultRenderer.Render(fragments, values...)
}

// ToAttributes expands an attribute map with the default renderer.
func ToAttributes(attrs any) (string, error) {
	return defaultRenderer.ToAttributes(attrs)
}

// Render parses fragments (reading inline modifier tokens) and executes the
// resulting template with values.
func (r *Renderer) Render(fragments []string, values ...any) (SafeString, error) {
	tmpl, err := Parse(fragments...)
	if err != nil {
		return SafeString{}, err
	}
	return r.Execute(tmpl, values...)
}

// Execute renders t with values. It needs exactly one value per slot.
func (r *Renderer) Execute(t *Template, values ...any) (SafeString, error) {
	if t == nil {
		return SafeString{}, fmt.Errorf("%w: template is nil", ErrShapeMismatch)
	}
	if len(values) != len(t.modifiers) {
		return SafeString{}, fmt.Errorf("%w: %d fragments need %d values, got %d",
			ErrShapeMismatch, len(t.fragments), len(t.modifiers), len(values))
	}

	var b strings.Builder
	for i, fragment := range t.fragments {
		b.WriteString(fragment)
		if i >= len(values) {
			break
		}
		text, err := r.Value(values[i], t.modifiers[i])
		if err != nil {
			return SafeString{}, fmt.Errorf("value %d: %w", i, err)
		}
		b.WriteString(text)
	}
	return SafeString{value: b.String()}, nil
}

// Value resolves a single value under modifier m.
func (r *Renderer) Value(v any, m Modifier) (string, error) {
	kind, value, err := classify(v)
	if err != nil {
		return "", err
	}

	switch {
	case kind == KindEmpty:
		return "", nil
	case kind == KindAttrs && m == ModifierAttrs:
		return r.attributes(value)
	case kind == KindAttrs:
		return "", fmt.Errorf("%w: attribute map %T needs the %s modifier", ErrUnsupportedValue, v, AttrsToken)
	case m == ModifierAttrs:
		return "", fmt.Errorf("%w: %s applied to a %s value", ErrModifierMisuse, AttrsToken, kind)
	}
	return r.text(kind, value, m == ModifierSafe)
}

// ToAttributes expands attrs into space separated HTML attributes. Nil
// renders as "", anything that is not an attribute map is ErrModifierMisuse.
func (r *Renderer) ToAttributes(attrs any) (string, error) {
	return r.Value(attrs, ModifierAttrs)
}

func (r *Renderer) text(kind Kind, v any, raw bool) (string, error) {
	switch kind {
	case KindEmpty:
		return "", nil
	case KindBool:
		return "true", nil
	case KindNumber:
		return v.(string), nil
	case KindSafe:
		return safeText(v), nil
	case KindUnsafe:
		return r.unescaped(v.(UnsafeValue).value)
	case KindString:
		return r.escape(v.(string), raw), nil
	case KindStringer:
		s, err := stringify(v)
		if err != nil {
			return "", err
		}
		return r.escape(s, raw), nil
	case KindList:
		return r.list(v, raw)
	default:
		return "", fmt.Errorf("%w: attribute map %T cannot be rendered as text", ErrUnsupportedValue, v)
	}
}

func (r *Renderer) unescaped(v any) (string, error) {
	kind, value, err := classify(v)
	if err != nil {
		return "", err
	}
	return r.text(kind, value, true)
}

func (r *Renderer) list(v any, raw bool) (string, error) {
	rv := reflect.ValueOf(v)
	parts := make([]string, rv.Len())
	for i := range parts {
		kind, value, err := classify(rv.Index(i).Interface())
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		text, err := r.text(kind, value, raw)
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		parts[i] = text
	}
	return strings.Join(parts, " "), nil
}

func (r *Renderer) escape(s string, raw bool) string {
	if raw {
		return s
	}
	return r.escaper.Escape(s)
}
