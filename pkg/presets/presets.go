// Package presets defines the visual styling of the three resume templates as
// go-theme manifests and resolves them into renderer configuration.
package presets

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render/template/gotemplate"
)

// VariantPrint is the variant used for exported documents.
const VariantPrint = "print"

// Token keys understood by the bundled HTML templates.
const (
	TokenLayout         = "layout"
	TokenImageRadius    = "imageRadius"
	TokenImageSize      = "imageSize"
	TokenFontFamily     = "fontFamily"
	TokenTextColor      = "textColor"
	TokenAccentColor    = "accentColor"
	TokenHeadingWeight  = "headingWeight"
	TokenHeadingColor   = "headingColor"
	TokenHeadingBorder  = "headingBorder"
	TokenPageBackground = "pageBackground"
	TokenPageShadow     = "pageShadow"
)

// Layout values.
const (
	LayoutSideBySide = "side-by-side"
	LayoutStacked    = "stacked"
)

var (
	// ErrUnknownPreset is returned when no manifest matches the requested name.
	ErrUnknownPreset = errors.New("presets: unknown preset")
	// ErrUnknownVariant is returned when the manifest has no such variant.
	ErrUnknownVariant = errors.New("presets: unknown variant")
)

// Catalog implements theme.ThemeSelector over a fixed set of manifests.
type Catalog struct {
	manifests   map[string]*theme.Manifest
	provider    theme.ThemeProvider
	defaultName string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// Option configures a Catalog.
type Option func(*Catalog)

// WithManifest adds or replaces a manifest.
func WithManifest(m *theme.Manifest) Option {
	return func(c *Catalog) {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return
		}
		c.manifests[m.Name] = m
	}
}

// WithDefault sets the preset used when Select receives an empty name.
func WithDefault(name string) Option {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.defaultName = trimmed
		}
	}
}

// New returns a catalog seeded with the bundled presets. Every manifest is
// registered with a go-theme registry, which rejects malformed manifests.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		manifests:   make(map[string]*theme.Manifest),
		defaultName: string(record.TemplateDefault),
	}
	for _, m := range Builtin() {
		c.manifests[m.Name] = m
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if _, ok := c.manifests[c.defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownPreset, c.defaultName)
	}

	registry := theme.NewRegistry()
	for _, name := range c.Names() {
		if err := registry.Register(c.manifests[name]); err != nil {
			return nil, fmt.Errorf("presets: register %q: %w", name, err)
		}
	}
	c.provider = registry
	return c, nil
}

// Provider exposes the go-theme registry backing the catalog.
func (c *Catalog) Provider() theme.ThemeProvider {
	return c.provider
}

// Names lists the manifest names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a manifest and variant. Empty names fall back to the
// default preset; an empty variant selects the base manifest.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.defaultName
	}
	manifest, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q for preset %q", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig resolves a template into the configuration handed to
// renderers.
func (c *Catalog) RendererConfig(tpl record.Template, variant string) (*theme.RendererConfig, error) {
	selection, err := c.Select(string(tpl), variant)
	if err != nil {
		return nil, err
	}
	return Resolve(selection), nil
}

// Resolve merges a selection's base manifest with its variant overrides.
func Resolve(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	m := selection.Manifest

	tokens := mergeStrings(m.Tokens, nil)
	partials := mergeStrings(m.Templates, nil)
	assets := mergeStrings(m.Assets.Files, nil)
	prefix := m.Assets.Prefix

	if v, ok := m.Variants[selection.Variant]; ok && selection.Variant != "" {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		assets = mergeStrings(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+gotemplate.CSSIdent(key)] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
