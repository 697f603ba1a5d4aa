package htmlstring

// Builder assembles a template slot by slot. Literal text added with Text is
// never scanned for modifier tokens, so it is the way to go when literal
// content may legitimately start with ":safe" or ":attrs".
type Builder struct {
	fragments []string
	modifiers []Modifier
	values    []any
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{fragments: []string{""}}
}

// Text appends literal HTML.
func (b *Builder) Text(s string) *Builder {
	b.init()
	b.fragments[len(b.fragments)-1] += s
	return b
}

// Value appends a value that will be escaped.
func (b *Builder) Value(v any) *Builder {
	return b.slot(v, ModifierEscape)
}

// Safe appends a value that will be emitted unescaped.
func (b *Builder) Safe(v any) *Builder {
	return b.slot(v, ModifierSafe)
}

// Attrs appends an attribute map that will be expanded.
func (b *Builder) Attrs(v any) *Builder {
	return b.slot(v, ModifierAttrs)
}

// Template returns the template built so far.
func (b *Builder) Template() *Template {
	b.init()
	return &Template{
		fragments: append([]string(nil), b.fragments...),
		modifiers: append([]Modifier(nil), b.modifiers...),
	}
}

// Values returns the values collected so far, in slot order.
func (b *Builder) Values() []any {
	return append([]any(nil), b.values...)
}

// Render executes the built template with the default renderer.
func (b *Builder) Render() (SafeString, error) {
	return b.RenderWith(defaultRenderer)
}

// RenderWith executes the built template with r.
func (b *Builder) RenderWith(r *Renderer) (SafeString, error) {
	return r.Execute(b.Template(), b.values...)
}

func (b *Builder) slot(v any, m Modifier) *Builder {
	b.init()
	b.modifiers = append(b.modifiers, m)
	b.values = append(b.values, v)
	b.fragments = append(b.fragments, "")
	return b
}

func (b *Builder) init() {
	if len(b.fragments) == 0 {
		b.fragments = []string{""}
	}
}
