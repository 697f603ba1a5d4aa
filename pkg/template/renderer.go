package template

import "io"

// Renderer is implemented by template engine bridges. Each render method
// returns the output and also copies it to every writer in out.
type Renderer interface {
	// Render treats name as inline source when it contains template
	// delimiters and as a template name otherwise.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(src string, data any, out ...io.Writer) (string, error)

	// RegisterFilter adds a filter. A filter returning htmlstring.SafeString
	// is not escaped again.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges data into the context of every render.
	GlobalContext(data any) error
}
