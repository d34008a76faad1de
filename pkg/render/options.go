package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request presentation settings.
type RenderOptions struct {
	// Theme is the resolved preset for the document's template. Renderers that
	// do not style their output ignore it.
	Theme *theme.RendererConfig
	// Title overrides the document title. Defaults to the person's name.
	Title string
	// Fragment asks HTML renderers for the body markup only, without the page
	// shell and stylesheet.
	Fragment bool
}
