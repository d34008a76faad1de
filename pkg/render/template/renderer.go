package template

import "io"

// TemplateRenderer executes named templates. When writers are supplied the
// output is also written to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
