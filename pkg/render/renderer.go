// Package render holds the output renderer contract and a registry keyed by
// renderer name. Renderers consume a preview.Document, never the Record.
package render

import (
	"context"

	"github.com/goliatone/go-resumegen/pkg/preview"
)

// Renderer converts a preview Document into bytes (HTML, plain text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc preview.Document, options RenderOptions) ([]byte, error)
}
