package htmlstring

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Modifier selects how a value slot is rendered.
type Modifier uint8

const (
	// ModifierEscape escapes the value. It is the default.
	ModifierEscape Modifier = iota
	// ModifierSafe emits the value without escaping.
	ModifierSafe
	// ModifierAttrs expands an attribute map into HTML attributes.
	ModifierAttrs
)

// Inline tokens recognised by Parse at the start of a fragment. HTMLToken
// is an alias of SafeToken.
const (
	SafeToken  = ":safe"
	HTMLToken  = ":html"
	AttrsToken = ":attrs"
)

func (m Modifier) String() string {
	switch m {
	case ModifierEscape:
		return "escape"
	case ModifierSafe:
		return "safe"
	case ModifierAttrs:
		return "attrs"
	default:
		return "modifier(" + strconv.Itoa(int(m)) + ")"
	}
}

// LookupModifier resolves a modifier by name. The empty name and "escape"
// map to ModifierEscape.
func LookupModifier(name string) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "escape":
		return ModifierEscape, true
	case "safe", "html":
		return ModifierSafe, true
	case "attrs":
		return ModifierAttrs, true
	default:
		return ModifierEscape, false
	}
}

// cutModifier strips a leading modifier token from fragment. A token only
// counts when the next character cannot continue an identifier.
func cutModifier(fragment string) (Modifier, string, bool) {
	if !strings.HasPrefix(fragment, ":") {
		return ModifierEscape, fragment, false
	}
	for _, candidate := range []struct {
		token    string
		modifier Modifier
	}{
		{AttrsToken, ModifierAttrs},
		{SafeToken, ModifierSafe},
		{HTMLToken, ModifierSafe},
	} {
		rest, ok := strings.CutPrefix(fragment, candidate.token)
		if !ok || continuesIdentifier(rest) {
			continue
		}
		return candidate.modifier, rest, true
	}
	return ModifierEscape, fragment, false
}

func continuesIdentifier(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
