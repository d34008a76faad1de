// Package text renders a preview Document as plain text for terminals and
// pipes.
package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "text"

// Option configures the renderer.
type Option func(*Renderer)

// WithWidth sets the width of heading rules. Values below 10 are ignored.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 10 {
			r.width = width
		}
	}
}

// Renderer writes headings underlined with rules and entries as indented
// bullet lists.
type Renderer struct {
	width int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: 60}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *Renderer) Render(ctx context.Context, doc preview.Document, _ render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	for i, block := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		r.writeBlock(&buf, block)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writeBlock(buf *bytes.Buffer, block preview.Block) {
	if block.Section == record.SectionPersonal && block.Personal != nil {
		p := block.Personal
		name := p.Name
		if name == "" {
			name = "(no name)"
		}
		fmt.Fprintf(buf, "%s\n%s\n", name, strings.Repeat("=", r.width))
		for _, c := range p.Contacts {
			fmt.Fprintf(buf, "%s: %s\n", c.Label, c.Value)
		}
		return
	}

	fmt.Fprintf(buf, "%s\n%s\n", strings.ToUpper(block.Heading), strings.Repeat("-", r.width))
	if block.Text != "" {
		buf.WriteString(block.Text)
		buf.WriteByte('\n')
	}
	if len(block.Items) > 0 {
		buf.WriteString(strings.Join(block.Items, ", "))
		buf.WriteByte('\n')
	}
	for _, entry := range block.Entries {
		line := entry.Title
		if entry.Dates != "" {
			if line != "" {
				line += " "
			}
			line += "(" + entry.Dates + ")"
		}
		if line != "" {
			fmt.Fprintf(buf, "%s\n", line)
		}
		if entry.Link != "" {
			fmt.Fprintf(buf, "  %s\n", entry.Link)
		}
		for _, item := range entry.Items {
			fmt.Fprintf(buf, "  * %s\n", item)
		}
	}
}
