package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/presets"
	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
	"github.com/goliatone/go-resumegen/pkg/renderers/jsondoc"
	"github.com/goliatone/go-resumegen/pkg/renderers/text"
)

const defaultRendererName = html.Name

// ErrNoExporter is returned by Export when no exporter is configured.
var ErrNoExporter = errors.New("orchestrator: exporter not configured")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithPresets injects the preset catalog used to style output.
func WithPresets(catalog *presets.Catalog) Option {
	return func(o *Orchestrator) {
		o.presets = catalog
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithExporter enables Export.
func WithExporter(exporter export.Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

// Orchestrator coordinates the pipeline from Record to rendered output. It
// applies sensible defaults (html, text and json renderers, bundled presets)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	presets         *presets.Catalog
	exporter        export.Exporter
	defaultRenderer string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Err reports a failure while initialising defaults.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Registry returns the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Presets returns the preset catalog.
func (o *Orchestrator) Presets() *presets.Catalog {
	return o.presets
}

// CanExport reports whether an exporter is configured.
func (o *Orchestrator) CanExport() bool {
	return o.exporter != nil
}

// Request describes one rendering.
type Request struct {
	// Record is projected with preview.Build. Optional when Document is set.
	Record *record.Record

	// Document bypasses the projection when the caller already holds it.
	Document *preview.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Variant selects a preset variant such as presets.VariantPrint.
	Variant string

	// Title and Fragment are forwarded to the renderer.
	Title    string
	Fragment bool
}

// Output is rendered bytes plus their content type.
type Output struct {
	Data        []byte
	ContentType string
}

// Generate renders req and returns the bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Render executes the preview → preset → renderer sequence.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	doc, err := resolveDocument(req)
	if err != nil {
		return Output{}, err
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}

	cfg, err := o.presets.RendererConfig(doc.Template, req.Variant)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: preset: %w", err)
	}

	data, contentType, err := o.registry.Render(ctx, name, doc, render.RenderOptions{
		Theme:    cfg,
		Title:    req.Title,
		Fragment: req.Fragment,
	})
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: %w", err)
	}
	return Output{Data: data, ContentType: contentType}, nil
}

// Export renders req as a print-variant HTML page and rasterises it. The
// renderer and variant fields of req are ignored.
func (o *Orchestrator) Export(ctx context.Context, req Request, cfg export.Config) ([]byte, error) {
	if o.exporter == nil {
		return nil, ErrNoExporter
	}
	req.Renderer = html.Name
	req.Variant = presets.VariantPrint
	req.Fragment = false

	page, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := o.exporter.Export(ctx, page.Data, cfg)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: export: %w", err)
	}
	return data, nil
}

func resolveDocument(req Request) (preview.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Record == nil {
		return preview.Document{}, errors.New("orchestrator: record or document is required")
	}
	rec := req.Record.Clone()
	rec.Repair()
	return preview.Build(rec), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.presets == nil {
		catalog, err := presets.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default presets: %w", err)
			return
		}
		o.presets = catalog
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// DefaultRegistry registers the html, text and json renderers. opts configure
// the html renderer.
func DefaultRegistry(opts ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(text.New())
	registry.MustRegister(jsondoc.New())
	return registry, nil
}
