package session

import (
	"context"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/imaging"
	"github.com/goliatone/go-resumegen/pkg/logging"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/presets"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render"
)

// Option configures a Session.
type Option func(*Session)

// WithPersistence sets the adapter used to load and save the Record. Without
// it the session keeps state in memory only.
func WithPersistence(adapter *persistence.Adapter) Option {
	return func(s *Session) {
		s.store = adapter
	}
}

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		s.log = logging.OrNop(l)
	}
}

// WithImageDecoder replaces the default imaging decoder.
func WithImageDecoder(d ImageDecoder) Option {
	return func(s *Session) {
		if d != nil {
			s.images = d
		}
	}
}

// WithExporter enables Export.
func WithExporter(e export.Exporter) Option {
	return func(s *Session) {
		s.pipelineOpts = append(s.pipelineOpts, orchestrator.WithExporter(e))
	}
}

// WithExportConfig sets the configuration used when Export receives a zero
// Config.
func WithExportConfig(cfg export.Config) Option {
	return func(s *Session) {
		s.exportCfg = cfg.Normalize()
	}
}

// WithRegistry replaces the default html/text/json renderer registry.
func WithRegistry(r *render.Registry) Option {
	return func(s *Session) {
		s.pipelineOpts = append(s.pipelineOpts, orchestrator.WithRegistry(r))
	}
}

// WithPresets replaces the bundled template presets.
func WithPresets(c *presets.Catalog) Option {
	return func(s *Session) {
		s.pipelineOpts = append(s.pipelineOpts, orchestrator.WithPresets(c))
	}
}

// WithOrchestrator shares a pipeline between sessions. It takes precedence
// over WithRegistry, WithPresets and WithExporter.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Session) {
		s.pipeline = o
	}
}

// WithRecord starts from rec instead of loading a snapshot.
func WithRecord(rec *record.Record) Option {
	return func(s *Session) {
		if rec != nil {
			s.initial = rec.Clone()
		}
	}
}

// WithFirstRunTemplate selects the template of a Record created from
// defaults because no snapshot exists. ClearAll still resets to the default
// template.
func WithFirstRunTemplate(tpl record.Template) Option {
	return func(s *Session) {
		if tpl.Valid() {
			s.firstRun = tpl
		}
	}
}

// ImageDecoder converts raw uploads into embeddable images.
type ImageDecoder interface {
	Decode(ctx context.Context, data []byte) (imaging.Image, error)
}
