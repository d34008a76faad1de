package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/presets"
)

// themeContext is the view of a preset exposed to templates.
type themeContext struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	Layout       string `json:"layout"`
	CSSVarsStyle string `json:"cssVarsStyle"`
	Stylesheet   string `json:"stylesheet"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	ctx := themeContext{Layout: presets.LayoutStacked}
	if cfg == nil {
		return ctx
	}
	ctx.Name = cfg.Theme
	ctx.Variant = cfg.Variant
	if layout := cfg.Tokens[presets.TokenLayout]; layout != "" {
		ctx.Layout = layout
	}
	ctx.CSSVarsStyle = cssVarsStyle(cfg.CSSVars)
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return ctx
}

// cssVarsStyle renders a :root rule. Values cannot close the style element.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, key := range keys {
		value := strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "").Replace(vars[key])
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}
