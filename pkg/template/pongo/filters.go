package pongo

import (
	"sync"

	"github.com/flosch/pongo2/v6"

	htmlstring "github.com/goliatone/go-htmlstring"
)

var (
	// filterMu serializes writes to pongo2's global filter table.
	filterMu    sync.Mutex
	filtersOnce sync.Once
)

func registerDefaultFilters() {
	filtersOnce.Do(func() {
		filterMu.Lock()
		defer filterMu.Unlock()
		if !pongo2.FilterExists("attrs") {
			_ = pongo2.RegisterFilter("attrs", filterAttrs)
		}
		if !pongo2.FilterExists("kebab") {
			_ = pongo2.RegisterFilter("kebab", filterKebab)
		}
	})
}

// filterAttrs expands an attribute map with the default htmlstring renderer.
// Map views built from context data resolve back to the original value, so
// Attrs keep their order and SafeString values are not escaped again.
func filterAttrs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	value := in.Interface()
	if src, ok := sourceOf(value); ok {
		value = src
	}
	attrs, err := htmlstring.ToAttributes(plain(value))
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:attrs", OrigError: err}
	}
	return pongo2.AsSafeValue(attrs), nil
}

func filterKebab(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(htmlstring.Kebab(in.String())), nil
}
