package escape_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlstring/pkg/escape"
)

func TestDefaultRegistry_ListsBuiltins(t *testing.T) {
	reg := escape.NewDefaultRegistry()
	want := []string{escape.NameEntities, escape.NameStrict, escape.NameUGC}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("registry names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_GetNormalizesName(t *testing.T) {
	reg := escape.NewDefaultRegistry()
	esc, err := reg.Get("  Entities ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := esc.Escape("<"); got != "&lt;" {
		t.Fatalf("expected entity escaper, got %q", got)
	}
	if !reg.Has("UGC") {
		t.Fatalf("expected ugc to be registered")
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := escape.NewRegistry()

	if err := reg.Register("", escape.Entities()); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatalf("expected error for nil escaper")
	}
	if err := reg.Register("x", escape.Entities()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("X", escape.Entities()); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	_, err := reg.Get("missing")
	if err == nil {
		t.Fatalf("expected missing escaper error")
	}
	if !strings.Contains(err.Error(), "known: x") {
		t.Fatalf("expected known names in error, got %v", err)
	}
}
