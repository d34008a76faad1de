package presets_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/presets"
	"github.com/goliatone/go-resumegen/pkg/record"
)

func TestCatalog_CoversEveryTemplate(t *testing.T) {
	catalog, err := presets.New()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if catalog.Provider() == nil {
		t.Fatalf("expected go-theme provider")
	}

	for _, tpl := range record.Templates() {
		cfg, err := catalog.RendererConfig(tpl, "")
		if err != nil {
			t.Fatalf("renderer config %q: %v", tpl, err)
		}
		if cfg.Theme != string(tpl) {
			t.Fatalf("theme mismatch: want %s, got %s", tpl, cfg.Theme)
		}
		if cfg.Tokens[presets.TokenLayout] == "" {
			t.Fatalf("preset %q has no layout token", tpl)
		}
		if cfg.CSSVars["--accent-color"] != cfg.Tokens[presets.TokenAccentColor] {
			t.Fatalf("css vars not derived from tokens for %q", tpl)
		}
	}
}

func TestCatalog_Layouts(t *testing.T) {
	catalog, err := presets.New()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	def, _ := catalog.RendererConfig(record.TemplateDefault, "")
	modern, _ := catalog.RendererConfig(record.TemplateModern, "")

	if def.Tokens[presets.TokenLayout] != presets.LayoutSideBySide {
		t.Fatalf("default preset should be side-by-side")
	}
	if modern.Tokens[presets.TokenLayout] != presets.LayoutStacked {
		t.Fatalf("modern preset should be stacked")
	}
}

func TestCatalog_PrintVariantOverridesTokens(t *testing.T) {
	catalog, err := presets.New()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	cfg, err := catalog.RendererConfig(record.TemplateModern, presets.VariantPrint)
	if err != nil {
		t.Fatalf("renderer config: %v", err)
	}
	if cfg.Variant != presets.VariantPrint {
		t.Fatalf("variant mismatch: %s", cfg.Variant)
	}
	if cfg.Tokens[presets.TokenPageBackground] != "#ffffff" || cfg.CSSVars["--page-shadow"] != "none" {
		t.Fatalf("print variant not merged: %+v", cfg.Tokens)
	}
	if cfg.Tokens[presets.TokenAccentColor] != "#805ad5" {
		t.Fatalf("base tokens lost during merge")
	}
}

func TestCatalog_SelectErrors(t *testing.T) {
	catalog, err := presets.New()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	if _, err := catalog.Select("retro", ""); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := catalog.Select("modern", "neon"); !errors.Is(err, presets.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}

	sel, err := catalog.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if sel.Theme != string(record.TemplateDefault) {
		t.Fatalf("expected default preset, got %s", sel.Theme)
	}
}

func TestCatalog_CustomManifestAssets(t *testing.T) {
	catalog, err := presets.New(presets.WithManifest(&theme.Manifest{
		Name:    "modern",
		Version: "2.0.0",
		Tokens:  map[string]string{presets.TokenLayout: presets.LayoutStacked},
		Assets: theme.Assets{
			Prefix: "/assets/presets/modern",
			Files:  map[string]string{"stylesheet": "modern.css"},
		},
	}))
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	cfg, err := catalog.RendererConfig(record.TemplateModern, "")
	if err != nil {
		t.Fatalf("renderer config: %v", err)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/presets/modern/modern.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for missing asset, got %q", got)
	}
}

func TestNew_RejectsUnknownDefault(t *testing.T) {
	if _, err := presets.New(presets.WithDefault("retro")); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}
