// Package jsondoc renders a preview Document as indented JSON.
package jsondoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "json"

type Renderer struct{}

var _ render.Renderer = Renderer{}

func New() Renderer { return Renderer{} }

func (Renderer) Name() string { return Name }

func (Renderer) ContentType() string { return "application/json" }

func (Renderer) Render(_ context.Context, doc preview.Document, _ render.RenderOptions) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsondoc: marshal: %w", err)
	}
	return append(out, '\n'), nil
}
