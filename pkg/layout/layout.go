package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	htmlstring "github.com/goliatone/go-htmlstring"
)

// ErrMissingValue reports a tag whose name is not present in the data.
var ErrMissingValue = errors.New("layout: missing value")

// Default tag delimiters.
const (
	DefaultStartTag = "{{"
	DefaultEndTag   = "}}"
)

// Option configures a Layout before parsing.
type Option func(*config)

type config struct {
	startTag string
	endTag   string
	renderer *htmlstring.Renderer
}

// WithTags overrides the tag delimiters. Empty values keep the defaults.
func WithTags(start, end string) Option {
	return func(cfg *config) {
		if start = strings.TrimSpace(start); start != "" {
			cfg.startTag = start
		}
		if end = strings.TrimSpace(end); end != "" {
			cfg.endTag = end
		}
	}
}

// WithRenderer sets the renderer used to resolve values.
func WithRenderer(r *htmlstring.Renderer) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.renderer = r
		}
	}
}

type tag struct {
	path     []string
	modifier htmlstring.Modifier
}

// Layout is a parsed template source. It is safe for concurrent use.
type Layout struct {
	tpl      *fasttemplate.Template
	tags     map[string]tag
	names    []string
	renderer *htmlstring.Renderer
}

// Parse compiles src. Every tag is validated up front so unknown modifiers
// and empty names fail here rather than at render time.
func Parse(src string, options ...Option) (*Layout, error) {
	cfg := &config{
		startTag: DefaultStartTag,
		endTag:   DefaultEndTag,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = htmlstring.Default()
	}

	tpl, err := fasttemplate.NewTemplate(src, cfg.startTag, cfg.endTag)
	if err != nil {
		return nil, fmt.Errorf("layout: parse: %w", err)
	}

	l := &Layout{
		tpl:      tpl,
		tags:     make(map[string]tag),
		renderer: cfg.renderer,
	}

	var parseErr error
	tpl.ExecuteFuncString(func(_ io.Writer, raw string) (int, error) {
		if parseErr != nil {
			return 0, nil
		}
		if _, seen := l.tags[raw]; seen {
			return 0, nil
		}
		parsed, err := parseTag(raw)
		if err != nil {
			parseErr = err
			return 0, nil
		}
		l.tags[raw] = parsed
		name := strings.Join(parsed.path, ".")
		if !contains(l.names, name) {
			l.names = append(l.names, name)
		}
		return 0, nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return l, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string, options ...Option) *Layout {
	l, err := Parse(src, options...)
	if err != nil {
		panic(err)
	}
	return l
}

// Names returns the value names referenced by the layout, in order of first
// appearance.
func (l *Layout) Names() []string {
	return append([]string(nil), l.names...)
}

// Execute renders the layout against data.
func (l *Layout) Execute(data map[string]any) (htmlstring.SafeString, error) {
	out, err := l.tpl.ExecuteFuncStringWithErr(func(w io.Writer, raw string) (int, error) {
		t := l.tags[raw]
		value, ok := lookup(data, t.path)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingValue, strings.Join(t.path, "."))
		}
		text, err := l.renderer.Value(value, t.modifier)
		if err != nil {
			return 0, fmt.Errorf("layout: %s: %w", strings.Join(t.path, "."), err)
		}
		return io.WriteString(w, text)
	})
	if err != nil {
		return htmlstring.SafeString{}, err
	}

	// The layout source is trusted markup; only tag output needed escaping.
	return htmlstring.Render([]string{"", ""}, htmlstring.Unsafe(out))
}

func parseTag(raw string) (tag, error) {
	name, modifierName, _ := strings.Cut(strings.TrimSpace(raw), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return tag{}, fmt.Errorf("layout: empty tag %q", raw)
	}

	modifier, ok := htmlstring.LookupModifier(modifierName)
	if !ok {
		return tag{}, fmt.Errorf("layout: unknown modifier %q in tag %q", strings.TrimSpace(modifierName), raw)
	}

	path := strings.Split(name, ".")
	for _, segment := range path {
		if strings.TrimSpace(segment) == "" || segment != strings.TrimSpace(segment) {
			return tag{}, fmt.Errorf("layout: invalid name %q", name)
		}
	}
	return tag{path: path, modifier: modifier}, nil
}

func lookup(data map[string]any, path []string) (any, bool) {
	var current any = data
	for _, segment := range path {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case htmlstring.Attrs:
			value, ok := node.Get(segment)
			if !ok {
				return nil, false
			}
			current = value
		default:
			return nil, false
		}
	}
	return current, true
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
