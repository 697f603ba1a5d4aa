package cli

import (
	"context"
	"fmt"
	"os"

	htmlstring "github.com/goliatone/go-htmlstring"
	"github.com/goliatone/go-htmlstring/internal/config"
	"github.com/goliatone/go-htmlstring/internal/data"
	"github.com/goliatone/go-htmlstring/pkg/layout"
	"github.com/goliatone/go-htmlstring/pkg/template/pongo"
)

// page renders a layout file against a data file. Both files are read on
// every call so a running server picks up edits.
type page struct {
	layoutPath string
	dataPath   string
	engine     string
	tags       config.LayoutConfig
	renderer   *htmlstring.Renderer
	pongo      *pongo.Engine
}

// newPage prepares a page for the configured engine. The pongo2 engine is
// built once and shared by every render.
func newPage(layoutPath, dataPath string, env environment) (*page, error) {
	p := &page{
		layoutPath: layoutPath,
		dataPath:   dataPath,
		engine:     env.cfg.Engine,
		tags:       env.cfg.Layout,
		renderer:   env.renderer,
	}
	switch p.engine {
	case config.EngineLayout:
	case config.EnginePongo:
		engine, err := pongo.New()
		if err != nil {
			return nil, err
		}
		p.pongo = engine
	default:
		return nil, fmt.Errorf("unknown engine %q", p.engine)
	}
	return p, nil
}

func (p *page) Render(ctx context.Context) (htmlstring.SafeString, error) {
	if err := ctx.Err(); err != nil {
		return htmlstring.SafeString{}, err
	}

	src, err := os.ReadFile(p.layoutPath)
	if err != nil {
		return htmlstring.SafeString{}, fmt.Errorf("read layout: %w", err)
	}
	values, err := data.Load(p.dataPath)
	if err != nil {
		return htmlstring.SafeString{}, err
	}

	if p.pongo != nil {
		out, err := p.pongo.RenderString(string(src), values)
		if err != nil {
			return htmlstring.SafeString{}, err
		}
		// pongo2 autoescapes its own output.
		return htmlstring.Render([]string{"", ""}, htmlstring.Unsafe(out))
	}

	l, err := layout.Parse(string(src),
		layout.WithTags(p.tags.StartTag, p.tags.EndTag),
		layout.WithRenderer(p.renderer),
	)
	if err != nil {
		return htmlstring.SafeString{}, err
	}
	return l.Execute(values)
}
