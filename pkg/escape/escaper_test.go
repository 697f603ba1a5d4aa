package escape_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlstring/pkg/escape"
)

func TestEntities_EncodesMarkup(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "funky", want: "funky"},
		{name: "script", input: "<script>alert(1)</script>", want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "ampersand", input: "fish & chips", want: "fish &amp; chips"},
		{name: "quotes", input: `say "hi" it's`, want: "say &#34;hi&#34; it&#39;s"},
	}

	esc := escape.Entities()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, esc.Escape(tc.input)); diff != "" {
				t.Fatalf("escape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFunc_AdaptsFunction(t *testing.T) {
	esc := escape.Func(strings.ToUpper)
	if got := esc.Escape("abc"); got != "ABC" {
		t.Fatalf("expected ABC, got %q", got)
	}
}

func TestStrict_DropsAllMarkup(t *testing.T) {
	got := escape.Strict().Escape(`<b onclick="steal()">bold</b><script>alert(1)</script>`)
	if got != "bold" {
		t.Fatalf("expected only text to survive, got %q", got)
	}
}

func TestUGC_RemovesDangerousConstructs(t *testing.T) {
	input := `<p onclick="steal()">hi <a href="javascript:alert(1)">x</a><b>bold</b></p><script>alert(1)</script>`
	got := escape.UGC().Escape(input)

	for _, banned := range []string{"onclick", "javascript:", "<script", "alert(1)"} {
		if strings.Contains(got, banned) {
			t.Fatalf("expected %q to be removed, got %q", banned, got)
		}
	}
	if !strings.Contains(got, "<b>bold</b>") {
		t.Fatalf("expected formatting markup to remain, got %q", got)
	}
}

func TestNewSanitizer_NilPolicyFallsBackToStrict(t *testing.T) {
	got := escape.NewSanitizer(nil).Escape("<i>x</i>")
	if got != "x" {
		t.Fatalf("expected strict fallback, got %q", got)
	}
}
