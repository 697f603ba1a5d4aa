package htmlstring

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// Attr is a single attribute name and value.
type Attr struct {
	Name  string
	Value any
}

// Attrs is an attribute map that keeps insertion order. Plain Go maps are
// accepted wherever Attrs is, but expand in sorted key order.
type Attrs []Attr

// Get returns the value stored under name.
func (a Attrs) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under name in place, or appends it.
func (a *Attrs) Set(name string, value any) {
	for i, attr := range *a {
		if attr.Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// Delete removes name and reports whether it was present.
func (a *Attrs) Delete(name string) bool {
	for i, attr := range *a {
		if attr.Name == name {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the attribute names in order.
func (a Attrs) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}
	return names
}

func (r *Renderer) attributes(v any) (string, error) {
	pairs := attrPairs(v)
	parts := make([]string, 0, len(pairs))
	for _, attr := range pairs {
		name := Kebab(attr.Name)
		if !validAttributeName(name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidAttributeName, attr.Name)
		}

		kind, value, err := classify(attr.Value)
		if err != nil {
			return "", fmt.Errorf("attribute %q: %w", name, err)
		}
		switch kind {
		case KindEmpty:
			continue
		case KindBool:
			parts = append(parts, name)
			continue
		}

		text, err := r.text(kind, value, false)
		if err != nil {
			return "", fmt.Errorf("attribute %q: %w", name, err)
		}
		parts = append(parts, name+`="`+text+`"`)
	}
	return strings.Join(parts, " "), nil
}

// attrPairs expects a value classified as KindAttrs.
func attrPairs(v any) Attrs {
	switch x := v.(type) {
	case Attrs:
		return x
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(Attrs, len(keys))
		for i, key := range keys {
			out[i] = Attr{Name: key, Value: x[key]}
		}
		return out
	}

	rv := reflect.ValueOf(v)
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	out := make(Attrs, len(keys))
	for i, key := range keys {
		out[i] = Attr{Name: key.String(), Value: rv.MapIndex(key).Interface()}
	}
	return out
}

func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
		switch r {
		case '"', '\'', '<', '>', '/', '=', '`':
			return false
		}
	}
	return true
}

// Kebab converts a camelCase key into a kebab-case attribute name:
// "dataCustom" becomes "data-custom" and "innerHTMLContent" becomes
// "inner-html-content". Keys that are already kebab-case only get
// lower-cased.
func Kebab(key string) string {
	runes := []rune(key)
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
