package presets

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-resumegen/pkg/record"
)

const manifestVersion = "1.0.0"

// printVariant flattens the page for paginated output.
var printVariant = theme.Variant{
	Tokens: map[string]string{
		TokenPageBackground: "#ffffff",
		TokenPageShadow:     "none",
	},
}

// Builtin returns fresh copies of the bundled manifests, one per template.
func Builtin() []*theme.Manifest {
	return []*theme.Manifest{
		{
			Name:    string(record.TemplateDefault),
			Version: manifestVersion,
			Tokens: map[string]string{
				TokenLayout:         LayoutSideBySide,
				TokenImageRadius:    "50%",
				TokenImageSize:      "96px",
				TokenFontFamily:     "Georgia, 'Times New Roman', serif",
				TokenTextColor:      "#222222",
				TokenAccentColor:    "#2b6cb0",
				TokenHeadingWeight:  "700",
				TokenHeadingColor:   "#2b6cb0",
				TokenHeadingBorder:  "2px solid #2b6cb0",
				TokenPageBackground: "#ffffff",
				TokenPageShadow:     "0 0 8px rgba(0,0,0,0.15)",
			},
			Variants: map[string]theme.Variant{VariantPrint: printVariant},
		},
		{
			Name:    string(record.TemplateModern),
			Version: manifestVersion,
			Tokens: map[string]string{
				TokenLayout:         LayoutStacked,
				TokenImageRadius:    "50%",
				TokenImageSize:      "120px",
				TokenFontFamily:     "'Helvetica Neue', Arial, sans-serif",
				TokenTextColor:      "#1a202c",
				TokenAccentColor:    "#805ad5",
				TokenHeadingWeight:  "600",
				TokenHeadingColor:   "#553c9a",
				TokenHeadingBorder:  "none",
				TokenPageBackground: "#faf5ff",
				TokenPageShadow:     "0 4px 16px rgba(85,60,154,0.2)",
			},
			Variants: map[string]theme.Variant{VariantPrint: printVariant},
		},
		{
			Name:    string(record.TemplateMinimalist),
			Version: manifestVersion,
			Tokens: map[string]string{
				TokenLayout:         LayoutStacked,
				TokenImageRadius:    "4px",
				TokenImageSize:      "72px",
				TokenFontFamily:     "'Inter', 'Segoe UI', sans-serif",
				TokenTextColor:      "#333333",
				TokenAccentColor:    "#333333",
				TokenHeadingWeight:  "400",
				TokenHeadingColor:   "#111111",
				TokenHeadingBorder:  "1px solid #dddddd",
				TokenPageBackground: "#ffffff",
				TokenPageShadow:     "none",
			},
			Variants: map[string]theme.Variant{VariantPrint: printVariant},
		},
	}
}
