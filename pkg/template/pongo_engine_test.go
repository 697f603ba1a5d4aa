package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"

	htmlstring "github.com/goliatone/go-htmlstring"
	"github.com/goliatone/go-htmlstring/pkg/template/pongo"
	"github.com/goliatone/go-htmlstring/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestPongoEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result := testsupport.Capture(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "<Ada>"}, w)
	})
	testsupport.Golden(t, filepath.Join("testdata", "hello.golden"), result)
}

func TestPongoEngine_HTMLStringValues(t *testing.T) {
	engine := newEngine(t)

	li := htmlstring.MustParse("<li>", "</li>")
	var items []htmlstring.SafeString
	for _, title := range []string{"Read this", "<b>"} {
		out, err := li.Execute(title)
		if err != nil {
			t.Fatalf("item: %v", err)
		}
		items = append(items, out)
	}

	result, err := engine.Render("todos", map[string]any{
		"list": htmlstring.Attrs{
			{Name: "id", Value: "tasks"},
			{Name: "dataCustom", Value: "value"},
			{Name: "dataSomeBool", Value: true},
		},
		"items":  items,
		"note":   "<em>note</em>",
		"banner": htmlstring.Unsafe("<strong>hi</strong>"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.Golden(t, filepath.Join("testdata", "todos.golden"), result)
}

func TestPongoEngine_GlobalContextAndFilter(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result := testsupport.Capture(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})
	testsupport.Golden(t, filepath.Join("testdata", "use-filter.golden"), result)
}

func TestPongoEngine_RenderString(t *testing.T) {
	engine, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderString(`<input {{ attrs|attrs }}> {{ "dataFooBar"|kebab }}`, map[string]any{
		"attrs": map[string]any{"type": "text", "required": true, "value": `"x"`},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	want := `<input required type="text" value="&#34;x&#34;"> data-foo-bar`
	if result != want {
		t.Fatalf("render string mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestPongoEngine_StructData(t *testing.T) {
	engine, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	type item struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}
	data := struct {
		Item  item `json:"item"`
		Total int  `json:"total"`
	}{Item: item{Title: "<tea>", Count: 3}, Total: 12}

	result, err := engine.RenderString(`{{ item.title }} x{{ item.count }} of {{ total }}`, data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if want := "&lt;tea&gt; x3 of 12"; result != want {
		t.Fatalf("render string mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestPongoEngine_NestedAttrsLookup(t *testing.T) {
	engine, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := map[string]any{
		"user": htmlstring.Attrs{
			{Name: "name", Value: "Ann"},
			{Name: "link", Value: htmlstring.Attrs{
				{Name: "href", Value: "/ann"},
				{Name: "ariaLabel", Value: "Ann's page"},
			}},
		},
	}
	result, err := engine.RenderString(`<a {{ user.link|attrs }}>{{ user.name }}</a> {{ user.link.href }}`, data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	want := `<a href="/ann" aria-label="Ann&#39;s page">Ann</a> /ann`
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestPongoEngine_AttrsFilterKeepsSafeValues(t *testing.T) {
	engine, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	title, err := htmlstring.Render([]string{"", ""}, "x&y")
	if err != nil {
		t.Fatalf("render title: %v", err)
	}
	m := map[string]any{"title": title}

	direct, err := htmlstring.ToAttributes(m)
	if err != nil {
		t.Fatalf("to attributes: %v", err)
	}
	result, err := engine.RenderString(`<p {{ m|attrs }}>`, map[string]any{"m": m})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if diff := cmp.Diff("<p "+direct+">", result); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(`<p title="x&amp;y">`, result); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}

	result, err = engine.RenderString(`<p {{ m|attrs }}>`, map[string]any{
		"m": map[string]any{"title": pongo2.AsSafeValue("<b>"), "lang": pongo2.AsValue("<en>")},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if diff := cmp.Diff(`<p lang="&lt;en&gt;" title="<b>">`, result); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestPongoEngine_ConcurrentUse(t *testing.T) {
	shared, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := pongo.New(); err != nil {
				errs <- err
			}
		}()
		go func(i int) {
			defer wg.Done()
			out, err := shared.RenderString(`{{ n }} {{ a|attrs }}`, map[string]any{
				"n": i,
				"a": htmlstring.Attrs{{Name: "dataN", Value: i}},
			})
			if err != nil {
				errs <- err
				return
			}
			if want := fmt.Sprintf(`%d data-n="%d"`, i, i); out != want {
				errs <- fmt.Errorf("got %q, want %q", out, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestPongoEngine_AttrsFilterRejectsScalars(t *testing.T) {
	engine, err := pongo.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderString(`<p {{ v|attrs }}>`, map[string]any{"v": "id"}); err == nil {
		t.Fatalf("expected attrs filter to reject a string")
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(pongo.WithFS(sub))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
