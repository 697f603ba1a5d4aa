package pongo

import (
	"bytes"
	"reflect"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/goccy/go-json"

	htmlstring "github.com/goliatone/go-htmlstring"
)

// sources maps the map views handed to pongo2 back to the value each view
// was built from, so the attrs filter sees the original key order and any
// htmlstring values inside. Keys are map header addresses.
var sources sync.Map

// scope tracks the views registered while converting one context.
type scope struct {
	keys []uintptr
}

func (s *scope) remember(view map[string]any, src any) {
	key := reflect.ValueOf(view).Pointer()
	sources.Store(key, src)
	s.keys = append(s.keys, key)
}

// release drops the views of a finished render.
func (s *scope) release() {
	for _, key := range s.keys {
		sources.Delete(key)
	}
	s.keys = nil
}

// sourceOf returns the value a view was built from.
func sourceOf(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return sources.Load(reflect.ValueOf(m).Pointer())
}

// toContext turns template data into a pongo2.Context. Structs and other
// non-map values go through a JSON round trip so templates see their JSON
// field names.
func toContext(data any, sc *scope) (pongo2.Context, error) {
	var pairs htmlstring.Attrs
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case htmlstring.Attrs:
		pairs = v
	case pongo2.Context:
		pairs = attrsOf(v)
	case map[string]any:
		pairs = attrsOf(v)
	default:
		var m map[string]any
		if err := roundTrip(v, &m); err != nil {
			return nil, err
		}
		pairs = attrsOf(m)
	}

	ctx := make(pongo2.Context, len(pairs))
	for _, p := range pairs {
		if p.Name == "" {
			continue
		}
		v, err := contextValue(p.Value, sc)
		if err != nil {
			return nil, err
		}
		ctx[p.Name] = v
	}
	return ctx, nil
}

// contextValue maps htmlstring values onto safe pongo2 values and walks
// containers. Attrs and maps become map views pongo2 can index by name.
func contextValue(value any, sc *scope) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, *pongo2.Value:
		return v, nil
	case htmlstring.SafeString:
		return pongo2.AsSafeValue(v.String()), nil
	case []htmlstring.SafeString:
		joined, err := htmlstring.Render([]string{"", ""}, v)
		if err != nil {
			return nil, err
		}
		return pongo2.AsSafeValue(joined.String()), nil
	case htmlstring.UnsafeValue:
		text, err := htmlstring.Default().Value(v, htmlstring.ModifierSafe)
		if err != nil {
			return nil, err
		}
		return pongo2.AsSafeValue(text), nil
	case htmlstring.Attrs:
		view := make(map[string]any, len(v))
		for _, attr := range v {
			c, err := contextValue(attr.Value, sc)
			if err != nil {
				return nil, err
			}
			view[attr.Name] = c
		}
		sc.remember(view, v)
		return view, nil
	case map[string]any:
		view := make(map[string]any, len(v))
		for k, item := range v {
			c, err := contextValue(item, sc)
			if err != nil {
				return nil, err
			}
			view[k] = c
		}
		sc.remember(view, v)
		return view, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			c, err := contextValue(item, sc)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	if reflect.ValueOf(value).Kind() == reflect.Func {
		return value, nil
	}
	var decoded any
	if err := roundTrip(value, &decoded); err != nil {
		return nil, err
	}
	return contextValue(decoded, sc)
}

// plain turns pongo2 values back into htmlstring values: safe ones become
// htmlstring.Unsafe so they are not escaped twice.
func plain(value any) any {
	switch v := value.(type) {
	case *pongo2.Value:
		if v == nil {
			return nil
		}
		if v.IsSafe() {
			return htmlstring.Unsafe(v.Interface())
		}
		return plain(v.Interface())
	case htmlstring.Attrs:
		out := make(htmlstring.Attrs, len(v))
		for i, attr := range v {
			out[i] = htmlstring.Attr{Name: attr.Name, Value: plain(attr.Value)}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = plain(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	}
	return value
}

func attrsOf(m map[string]any) htmlstring.Attrs {
	out := make(htmlstring.Attrs, 0, len(m))
	for k, v := range m {
		out = append(out, htmlstring.Attr{Name: k, Value: v})
	}
	return out
}

// roundTrip decodes numbers as json.Number so they print the way they were
// written instead of as floats.
func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}
