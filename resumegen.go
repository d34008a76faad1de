// Package resumegen is the top-level entry point: render a Record with one of
// the bundled templates, or hold an editing session over a snapshot store.
package resumegen

import (
	"context"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
	"github.com/goliatone/go-resumegen/pkg/session"
)

// Record aliases record.Record.
type Record = record.Record

// Session aliases session.Session.
type Session = session.Session

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewRecord returns first-run defaults.
func NewRecord() *Record {
	return record.New()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewSession exposes the session constructor from the top-level module.
func NewSession(ctx context.Context, options ...session.Option) (*Session, error) {
	return session.New(ctx, options...)
}

// GenerateHTML renders rec as a full HTML page styled with its template. It
// is the simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, rec *Record, options ...orchestrator.Option) ([]byte, error) {
	return Generate(ctx, rec, html.Name, options...)
}

// Generate renders rec with the named renderer (html, text or json).
func Generate(ctx context.Context, rec *Record, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Record:   rec,
		Renderer: rendererName,
	})
}

// ExportPDF renders rec with the print variant of its template and rasterises
// it with exporter.
func ExportPDF(ctx context.Context, rec *Record, exporter export.Exporter, cfg export.Config) ([]byte, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return orchestrator.New(orchestrator.WithExporter(exporter)).Export(ctx, orchestrator.Request{Record: rec}, cfg)
}

// DecodeSnapshot parses a stored snapshot, checking it against the embedded
// schema and repairing legacy shapes.
func DecodeSnapshot(data []byte) (*Record, error) {
	return persistence.Decode(data, true)
}
