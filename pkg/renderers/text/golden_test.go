package text_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/text"
	"github.com/goliatone/go-resumegen/pkg/testsupport"
)

func TestRenderer_SampleGolden(t *testing.T) {
	golden := filepath.Join("testdata", "sample.golden.txt")

	doc := preview.Build(testsupport.SampleRecord())
	out, err := text.New(text.WithWidth(20)).Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}

	want := testsupport.MustReadGolden(t, golden)
	if diff := testsupport.CompareGolden(string(want), string(out)); diff != "" {
		t.Fatalf("text output mismatch (-want +got):\n%s", diff)
	}
}
