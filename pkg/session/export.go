package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
)

// Artifact is a finished export.
type Artifact struct {
	ID          string
	FileName    string
	ContentType string
	Data        []byte
}

// Busy reports whether an export is running.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Export renders the current preview with the print variant of the active
// preset and hands it to the exporter. A zero cfg uses the session default.
// Only one export runs at a time; the Record is never modified.
func (s *Session) Export(ctx context.Context, cfg export.Config) (Artifact, error) {
	if !s.pipeline.CanExport() {
		return Artifact{}, ErrNoExporter
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Artifact{}, ErrBusy
	}
	defer s.busy.Store(false)

	id := uuid.NewString()

	s.mu.Lock()
	doc := s.doc
	name := s.rec.Personal.Name
	s.mu.Unlock()

	if cfg == (export.Config{}) {
		cfg = s.exportCfg
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Artifact{}, err
	}
	if cfg.FileName == "" {
		cfg.FileName = export.FileName(name)
	}

	s.log.Info("session: export started", "export_id", id, "file", cfg.FileName)
	data, err := s.pipeline.Export(ctx, orchestrator.Request{Document: &doc}, cfg)
	if err != nil {
		s.log.Error("session: export failed", "export_id", id, "error", err)
		return Artifact{}, fmt.Errorf("%w: %w", ErrExport, err)
	}
	s.log.Info("session: export finished", "export_id", id, "bytes", len(data))

	return Artifact{
		ID:          id,
		FileName:    cfg.FileName,
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
