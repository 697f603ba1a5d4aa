package htmlstring

import (
	"encoding"
	"fmt"
	"html/template"
	"reflect"
	"strconv"

	"github.com/google/safehtml"
)

// Kind is the closed set of value shapes a renderer understands.
type Kind uint8

const (
	// KindEmpty covers nil, typed nil pointers and false. It renders as "".
	KindEmpty Kind = iota
	// KindBool is true. It renders as "true", or as a bare attribute.
	KindBool
	// KindNumber covers every integer and float type.
	KindNumber
	// KindString covers strings, byte slices and named string types.
	KindString
	// KindList covers slices and arrays; elements are joined with a space.
	KindList
	// KindSafe covers SafeString, safehtml.HTML and html/template.HTML.
	KindSafe
	// KindUnsafe is an UnsafeValue.
	KindUnsafe
	// KindAttrs covers Attrs and maps keyed by strings.
	KindAttrs
	// KindStringer covers fmt.Stringer, error and encoding.TextMarshaler.
	KindStringer
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindBool:     "bool",
	KindNumber:   "number",
	KindString:   "string",
	KindList:     "list",
	KindSafe:     "safe",
	KindUnsafe:   "unsafe",
	KindAttrs:    "attrs",
	KindStringer: "stringer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Classify reports the Kind of v. Values outside the supported shapes
// (structs without a string form, funcs, channels, complex numbers, maps
// with non-string keys) return ErrUnsupportedValue.
func Classify(v any) (Kind, error) {
	kind, _, err := classify(v)
	return kind, err
}

// classify returns the kind together with a normalised value: pointers are
// dereferenced, strings are plain strings and numbers are already formatted.
func classify(v any) (Kind, any, error) {
	switch x := v.(type) {
	case nil:
		return KindEmpty, nil, nil
	case bool:
		if !x {
			return KindEmpty, nil, nil
		}
		return KindBool, x, nil
	case string:
		return KindString, x, nil
	case []byte:
		return KindString, string(x), nil
	case SafeString, safehtml.HTML, template.HTML:
		return KindSafe, x, nil
	case *SafeString:
		if x == nil {
			return KindEmpty, nil, nil
		}
		return KindSafe, *x, nil
	case UnsafeValue:
		return KindUnsafe, x, nil
	case *UnsafeValue:
		if x == nil {
			return KindEmpty, nil, nil
		}
		return KindUnsafe, *x, nil
	case Attrs:
		return KindAttrs, x, nil
	case map[string]any:
		return KindAttrs, x, nil
	case fmt.Stringer, error, encoding.TextMarshaler:
		if isNil(v) {
			return KindEmpty, nil, nil
		}
		return KindStringer, x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindEmpty, nil, nil
		}
		return classify(rv.Elem().Interface())
	case reflect.Bool:
		if !rv.Bool() {
			return KindEmpty, nil, nil
		}
		return KindBool, true, nil
	case reflect.String:
		return KindString, rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindNumber, strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindNumber, strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return KindNumber, strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return KindNumber, strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindString, string(rv.Bytes()), nil
		}
		return KindList, v, nil
	case reflect.Array:
		return KindList, v, nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindAttrs, v, nil
		}
	}
	return KindEmpty, nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func stringify(v any) (string, error) {
	switch x := v.(type) {
	case fmt.Stringer:
		return x.String(), nil
	case error:
		return x.Error(), nil
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal %T: %w", v, err)
		}
		return string(text), nil
	default:
		return "", fmt.Errorf("%w: %T has no string form", ErrUnsupportedValue, v)
	}
}

func safeText(v any) string {
	switch x := v.(type) {
	case SafeString:
		return x.value
	case safehtml.HTML:
		return x.String()
	case template.HTML:
		return string(x)
	default:
		return ""
	}
}
