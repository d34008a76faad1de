// Package html renders a preview Document as a styled HTML page. The resume
// body is rendered from pongo2 templates and sanitised before it is placed in
// the page shell.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/render"
	rendertemplate "github.com/goliatone/go-resumegen/pkg/render/template"
	"github.com/goliatone/go-resumegen/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

const (
	pageTemplate   = "templates/page.tmpl"
	resumeTemplate = "templates/resume.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overlays templates from a directory on disk. Templates
// missing there fall back to the bundled ones.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined base stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = css
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), stylesheet: defaultStylesheet()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheet}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the sanitised resume markup, wrapped in a full page unless
// options.Fragment is set.
func (r *Renderer) Render(_ context.Context, doc preview.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	themeCtx := buildThemeContext(options.Theme)
	body, err := r.templates.RenderTemplate(resumeTemplate, map[string]any{
		"doc":   doc,
		"theme": themeCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render resume: %w", err)
	}
	body = strings.TrimSpace(fragmentSanitizer().Sanitize(body))

	if options.Fragment {
		return []byte(body), nil
	}

	page, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"title":      pageTitle(doc, options.Title),
		"body":       body,
		"theme":      themeCtx,
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func pageTitle(doc preview.Document, override string) string {
	if title := strings.TrimSpace(override); title != "" {
		return title
	}
	for _, block := range doc.Blocks {
		if block.Personal != nil && block.Personal.Name != "" {
			return block.Personal.Name + " - Resume"
		}
	}
	return "Resume"
}
