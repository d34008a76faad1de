package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render"
)

type stubRenderer struct {
	name string
	err  error
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/x-" + s.name }
func (s stubRenderer) Render(_ context.Context, doc preview.Document, _ render.RenderOptions) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(doc.Template), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "text"})
	reg.MustRegister(stubRenderer{name: "html"})

	if err := reg.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if diff := cmp.Diff([]string{"html", "text"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("text") || reg.Has("pdf") {
		t.Fatalf("unexpected Has results")
	}
}

func TestRegistry_Render(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "text"})
	reg.MustRegister(stubRenderer{name: "broken", err: errors.New("boom")})

	out, contentType, err := reg.Render(context.Background(), "text", preview.Document{Template: record.TemplateModern}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "modern" || contentType != "text/x-text" {
		t.Fatalf("unexpected output %q (%s)", out, contentType)
	}

	if _, _, err := reg.Render(context.Background(), "pdf", preview.Document{}, render.RenderOptions{}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if _, _, err := reg.Render(context.Background(), "broken", preview.Document{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected renderer error to propagate")
	}
}
