package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component exposes a gomponents node as a templ.Component so handlers
// render every page and fragment the same way.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Fragments renders several nodes back to back, used for a main swap
// followed by out-of-band swaps.
func Fragments(nodes ...g.Node) templ.Component {
	return Component(g.Group(nodes))
}
