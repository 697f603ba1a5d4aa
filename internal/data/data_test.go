package data_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	htmlstring "github.com/goliatone/go-htmlstring"
	"github.com/goliatone/go-htmlstring/internal/data"
)

func TestDecodeYAML_PreservesMappingOrder(t *testing.T) {
	body := `
title: Todos
count: 0
list:
  id: tasks
  dataCustom: value
  dataSomeBool: true
  hidden: false
todos:
  - Read this
  - <b>important task</b>
defaults: &defaults
  role: list
alias: *defaults
`
	got, err := data.DecodeYAML(strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]any{
		"title": "Todos",
		"count": 0,
		"list": htmlstring.Attrs{
			{Name: "id", Value: "tasks"},
			{Name: "dataCustom", Value: "value"},
			{Name: "dataSomeBool", Value: true},
			{Name: "hidden", Value: false},
		},
		"todos":    []any{"Read this", "<b>important task</b>"},
		"defaults": htmlstring.Attrs{{Name: "role", Value: "list"}},
		"alias":    htmlstring.Attrs{{Name: "role", Value: "list"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}

	attrs, err := htmlstring.ToAttributes(got["list"])
	if err != nil {
		t.Fatalf("to attributes: %v", err)
	}
	if attrs != `id="tasks" data-custom="value" data-some-bool` {
		t.Fatalf("unexpected attribute order %q", attrs)
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	for name, body := range map[string]string{
		"sequence root": "- a\n- b\n",
		"scalar root":   "hello\n",
		"complex key":   "? [a, b]\n: c\n",
		"syntax":        "a: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := data.DecodeYAML(strings.NewReader(body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestDecodeYAML_Empty(t *testing.T) {
	got, err := data.DecodeYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	got, err := data.DecodeJSON(strings.NewReader(`{"name":"<Ada>","n":1,"attrs":{"b":"2","a":true}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"name":  "<Ada>",
		"n":     float64(1),
		"attrs": map[string]any{"b": "2", "a": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}

	if _, err := data.DecodeJSON(strings.NewReader(`[1,2]`)); err == nil {
		t.Fatalf("expected array root to fail")
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "data.json")
	yamlPath := filepath.Join(dir, "data.yml")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"json"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(yamlPath, []byte("name: yaml\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for path, want := range map[string]string{jsonPath: "json", yamlPath: "yaml"} {
		got, err := data.Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if got["name"] != want {
			t.Fatalf("load %s: expected %q, got %v", path, want, got["name"])
		}
	}

	empty, err := data.Load("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty data for empty path, got %v, %v", empty, err)
	}
	if _, err := data.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoadOrdered(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "attrs.yaml")
	jsonPath := filepath.Join(dir, "attrs.json")
	if err := os.WriteFile(yamlPath, []byte("type: text\nrequired: true\nariaLabel: Name\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(jsonPath, []byte(`{"type":"text","required":true}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ordered, err := data.LoadOrdered(yamlPath)
	if err != nil {
		t.Fatalf("load ordered: %v", err)
	}
	if diff := cmp.Diff([]string{"type", "required", "ariaLabel"}, ordered.Names()); diff != "" {
		t.Fatalf("yaml order mismatch (-want +got):\n%s", diff)
	}

	sorted, err := data.LoadOrdered(jsonPath)
	if err != nil {
		t.Fatalf("load ordered: %v", err)
	}
	if diff := cmp.Diff([]string{"required", "type"}, sorted.Names()); diff != "" {
		t.Fatalf("json order mismatch (-want +got):\n%s", diff)
	}
}
