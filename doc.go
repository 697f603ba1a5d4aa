// Package htmlstring renders HTML strings from literal fragments interleaved
// with dynamic values, escaping every value by default.
//
// A template is a list of N literal fragments and N-1 values. Each value is
// classified (see Kind) and resolved according to the modifier of its slot:
//
//	ModifierEscape  values are escaped with the renderer's escape.Escaper
//	ModifierSafe    values pass through unescaped
//	ModifierAttrs   attribute maps expand into name="value" pairs
//
// Modifiers can be written inline as a token at the start of the fragment that
// follows the value, which is how Parse reads them:
//
//	tmpl := htmlstring.MustParse(`<ul `, `:attrs>`, `:safe</ul>`)
//	out, err := tmpl.Execute(htmlstring.Attrs{{Name: "id", Value: "tasks"}}, items)
//
// or set explicitly with a Builder, which never inspects literal text.
//
// Rendered output is a SafeString. Passing a SafeString back in as a value
// embeds it verbatim, so templates compose without double escaping. Finalize
// trims and unwraps the result for transmission.
//
// A Renderer holds no mutable state and can be shared between goroutines.
package htmlstring
