package export

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PageSize names a paper format.
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
	PageLegal  PageSize = "Legal"
)

// ParsePageSize is case-insensitive.
func ParsePageSize(s string) (PageSize, bool) {
	for _, size := range []PageSize{PageA4, PageLetter, PageLegal} {
		if strings.EqualFold(strings.TrimSpace(s), string(size)) {
			return size, true
		}
	}
	return "", false
}

// Inches returns portrait width and height.
func (p PageSize) Inches() (width, height float64) {
	switch p {
	case PageLetter:
		return 8.5, 11
	case PageLegal:
		return 8.5, 14
	default:
		// A4: 210mm x 297mm
		return 8.27, 11.69
	}
}

// Config controls the produced document.
type Config struct {
	// MarginsMM applies to all four sides.
	MarginsMM float64 `yaml:"margins_mm" json:"marginsMM"`
	// Scale is the render scale, between 0.1 and 2.
	Scale     float64  `yaml:"scale" json:"scale"`
	PageSize  PageSize `yaml:"page_size" json:"pageSize"`
	Landscape bool     `yaml:"landscape" json:"landscape"`
	// FileName is the suggested download name. Empty means FileName(name).
	FileName string `yaml:"file_name" json:"fileName"`
}

// DefaultConfig is A4 portrait with 10mm margins at scale 1.
func DefaultConfig() Config {
	return Config{
		MarginsMM: 10,
		Scale:     1,
		PageSize:  PageA4,
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("export: invalid config")

// Normalize fills zero values from DefaultConfig.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.Scale == 0 {
		c.Scale = def.Scale
	}
	if c.PageSize == "" {
		c.PageSize = def.PageSize
	}
	return c
}

// Validate reports out of range values.
func (c Config) Validate() error {
	if c.MarginsMM < 0 || c.MarginsMM > 50 {
		return fmt.Errorf("%w: margins %.1fmm outside [0, 50]", ErrInvalidConfig, c.MarginsMM)
	}
	if c.Scale < 0.1 || c.Scale > 2 {
		return fmt.Errorf("%w: scale %.2f outside [0.1, 2]", ErrInvalidConfig, c.Scale)
	}
	if _, ok := ParsePageSize(string(c.PageSize)); !ok {
		return fmt.Errorf("%w: page size %q", ErrInvalidConfig, c.PageSize)
	}
	return nil
}

// DefaultFileName is used when no name is set.
const DefaultFileName = "resume.pdf"

// FileName derives a download name from a person's name: runs of whitespace
// become a single underscore and "_Resume.pdf" is appended.
func FileName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`/\:*?"<>|`, r)
	})
	if len(parts) == 0 {
		return DefaultFileName
	}
	return strings.Join(parts, "_") + "_Resume.pdf"
}
