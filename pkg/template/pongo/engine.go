package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	htmlstring "github.com/goliatone/go-htmlstring"
	"github.com/goliatone/go-htmlstring/pkg/template"
)

var errNilEngine = errors.New("pongo: engine is nil")

// Option configures an Engine.
type Option func(*options)

type options struct {
	dir     string
	files   fs.FS
	ext     string
	globals map[string]any
}

// WithBaseDir loads named templates from dir.
func WithBaseDir(dir string) Option {
	return func(o *options) { o.dir = strings.TrimSpace(dir) }
}

// WithFS loads named templates from files. It is consulted after the base
// dir when both are set.
func WithFS(files fs.FS) Option {
	return func(o *options) { o.files = files }
}

// WithExtension sets the suffix appended to template names (".tpl" by
// default). The leading dot is optional.
func WithExtension(ext string) Option {
	return func(o *options) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		o.ext = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithGlobalData merges data into the context shared by every template.
func WithGlobalData(data map[string]any) Option {
	return func(o *options) {
		if o.globals == nil {
			o.globals = map[string]any{}
		}
		for k, v := range data {
			o.globals[k] = v
		}
	}
}

// Engine renders pongo2 templates. htmlstring.SafeString and
// htmlstring.UnsafeValue context values bypass pongo2's autoescaping and the
// "attrs" filter expands attribute maps.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	// mu guards compiled and set.Globals.
	mu       sync.RWMutex
	compiled map[string]*pongo2.Template
}

var _ template.Renderer = (*Engine)(nil)

// New builds an Engine. With neither WithBaseDir nor WithFS, names resolve
// against the working directory.
func New(opts ...Option) (*Engine, error) {
	o := options{ext: ".tpl"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	loaders, err := o.loaders()
	if err != nil {
		return nil, err
	}

	registerDefaultFilters()
	e := &Engine{
		set:      pongo2.NewSet("htmlstring", loaders...),
		ext:      o.ext,
		compiled: map[string]*pongo2.Template{},
	}
	if len(o.globals) > 0 {
		if err := e.GlobalContext(o.globals); err != nil {
			return nil, fmt.Errorf("pongo: global data: %w", err)
		}
	}
	return e, nil
}

func (o options) loaders() ([]pongo2.TemplateLoader, error) {
	var out []pongo2.TemplateLoader
	if o.dir != "" {
		l, err := pongo2.NewLocalFileSystemLoader(o.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: base dir %s: %w", o.dir, err)
		}
		out = append(out, l)
	}
	if o.files != nil {
		out = append(out, pongo2.NewFSLoader(o.files))
	}
	if len(out) == 0 {
		out = append(out, pongo2.MustNewLocalFileSystemLoader(""))
	}
	return out, nil
}

// Render renders name as inline source when it contains "{{" or "{%",
// otherwise as a template file.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the named template file. Compiled templates are
// cached per engine.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.run(tpl, name, data, out)
}

// RenderString compiles and renders src.
func (e *Engine) RenderString(src string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	e.mu.Lock()
	tpl, err := e.set.FromString(src)
	e.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.run(tpl, "inline template", data, out)
}

// RegisterFilter adds a filter to pongo2's process-wide filter table. Register
// filters before rendering starts: pongo2 reads the table unlocked while
// parsing.
// Returning an htmlstring.SafeString from fn marks the output safe.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter needs a name and a function")
	}

	filterMu.Lock()
	defer filterMu.Unlock()
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		res, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		if s, ok := res.(htmlstring.SafeString); ok {
			return pongo2.AsSafeValue(s.String()), nil
		}
		return pongo2.AsValue(res), nil
	})
}

// GlobalContext merges data into the globals of every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	// Views of global data live as long as the engine.
	ctx, err := toContext(data, &scope{})
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) run(tpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	sc := &scope{}
	defer sc.release()
	ctx, err := toContext(data, sc)
	if err != nil {
		return "", fmt.Errorf("pongo: %s: context: %w", label, err)
	}

	e.mu.RLock()
	rendered, err := tpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: %s: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl := e.compiled[name]
	e.mu.RUnlock()
	if tpl != nil {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tpl := e.compiled[name]; tpl != nil {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %s: %w", name, err)
	}
	e.compiled[name] = tpl
	return tpl, nil
}
