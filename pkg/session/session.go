// Package session owns the Record for one editing session. It is the single
// writer: every mutation takes the session lock, changes the Record through
// the field-path, collection or section-order components, rebuilds the
// preview and saves a snapshot before returning.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/imaging"
	"github.com/goliatone/go-resumegen/pkg/logging"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/preview"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
)

var (
	// ErrUnknownTemplate is returned by SelectTemplate for names outside the
	// fixed template set. The Record is left untouched.
	ErrUnknownTemplate = errors.New("session: unknown template")
	// ErrBusy is returned by Export while another export is running.
	ErrBusy = errors.New("session: export in progress")
	// ErrNoExporter is returned by Export when no exporter is configured.
	ErrNoExporter = errors.New("session: export not configured")
	// ErrExport wraps exporter failures.
	ErrExport = errors.New("session: export failed")
)

// Session is safe for concurrent use; mutations are serialised.
type Session struct {
	mu  sync.Mutex
	rec *record.Record
	doc preview.Document

	store        *persistence.Adapter
	log          logging.Logger
	images       ImageDecoder
	exportCfg    export.Config
	pipeline     *orchestrator.Orchestrator
	pipelineOpts []orchestrator.Option
	initial      *record.Record
	firstRun     record.Template

	imageSeq uint64
	pending  sync.WaitGroup
	busy     atomic.Bool
}

// New builds a session. The Record comes from WithRecord, else from the
// persisted snapshot, else first-run defaults.
func New(ctx context.Context, opts ...Option) (*Session, error) {
	s := &Session{
		log:       logging.Nop(),
		images:    imaging.Decoder{},
		exportCfg: export.DefaultConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.pipeline == nil {
		s.pipeline = orchestrator.New(s.pipelineOpts...)
	}
	s.pipelineOpts = nil
	if err := s.pipeline.Err(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	switch {
	case s.initial != nil:
		s.rec = s.initial
		s.rec.Repair()
		s.initial = nil
	case s.store != nil:
		if rec, ok := s.store.Load(ctx); ok {
			s.rec = rec
			s.log.Info("session: snapshot restored", "key", s.store.Key())
		}
	}
	if s.rec == nil {
		s.rec = record.New()
		if s.firstRun != "" {
			s.rec.CurrentTemplate = s.firstRun
		}
	}
	s.doc = preview.Build(s.rec)
	return s, nil
}

// commit rebuilds the preview and saves. Callers hold s.mu.
func (s *Session) commit(ctx context.Context) {
	s.doc = preview.Build(s.rec)
	if s.store != nil {
		s.store.Save(ctx, s.rec)
	}
}

// Record returns a copy of the current Record.
func (s *Session) Record() *record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Preview returns the current preview document.
func (s *Session) Preview() preview.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Apply performs a typed edit. It reports whether the Record changed.
func (s *Session) Apply(ctx context.Context, edit fieldpath.Edit) bool {
	if edit == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fieldpath.Apply(s.rec, edit) {
		return false
	}
	s.commit(ctx)
	return true
}

// SetField applies a legacy input identifier. Unknown identifiers are a
// no-op.
func (s *Session) SetField(ctx context.Context, identifier, value string) bool {
	edit, err := fieldpath.Parse(identifier, value)
	if err != nil {
		s.log.Debug("session: field ignored", "identifier", identifier, "error", err)
		return false
	}
	return s.Apply(ctx, edit)
}

// AddEntry appends an entry and returns its index.
func (s *Session) AddEntry(ctx context.Context, section record.SectionID, initial collection.Values) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := collection.Add(s.rec, section, initial)
	if err != nil {
		return -1, err
	}
	s.commit(ctx)
	return index, nil
}

// AddEntries appends several entries and commits once.
func (s *Session) AddEntries(ctx context.Context, section record.SectionID, entries []collection.Values) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := make([]int, 0, len(entries))
	for _, values := range entries {
		index, err := collection.Add(s.rec, section, values)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, index)
	}
	if len(indexes) > 0 {
		s.commit(ctx)
	}
	return indexes, nil
}

// RemoveEntry deletes an entry. Out of range indexes are a no-op.
func (s *Session) RemoveEntry(ctx context.Context, section record.SectionID, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !collection.Remove(s.rec, section, index) {
		return false
	}
	s.commit(ctx)
	return true
}

// MoveEntry swaps an entry with its neighbour. Boundary moves are a no-op.
func (s *Session) MoveEntry(ctx context.Context, section record.SectionID, index int, dir collection.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !collection.Move(s.rec, section, index, dir) {
		return false
	}
	s.commit(ctx)
	return true
}

// Slots returns the reindexed entry slots of a list section.
func (s *Session) Slots(section record.SectionID) ([]collection.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Reindex(s.rec, section)
}

// MoveSection moves a top-level section one step. The pinned section and
// moves past either boundary are a no-op.
func (s *Session) MoveSection(ctx context.Context, id record.SectionID, dir sectionorder.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sectionorder.Move(s.rec.SectionOrder, id, dir) {
		return false
	}
	s.commit(ctx)
	return true
}

// SelectTemplate switches the active preset. Only the template tag changes.
func (s *Session) SelectTemplate(ctx context.Context, name string) error {
	tpl, ok := record.ParseTemplate(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec.CurrentTemplate == tpl {
		return nil
	}
	s.rec.CurrentTemplate = tpl
	s.commit(ctx)
	return nil
}

// ClearAll resets to first-run defaults and deletes the snapshot. In-flight
// image decodes are discarded.
func (s *Session) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imageSeq++
	s.rec = record.New()
	s.doc = preview.Build(s.rec)
	if s.store != nil {
		s.store.Clear(ctx)
	}
	s.log.Info("session: cleared")
}

// Render renders the current preview with a registered renderer, styled with
// the active template's preset.
func (s *Session) Render(ctx context.Context, format string) ([]byte, string, error) {
	doc := s.Preview()
	out, err := s.pipeline.Render(ctx, orchestrator.Request{Document: &doc, Renderer: format})
	if err != nil {
		return nil, "", err
	}
	return out.Data, out.ContentType, nil
}

// Close waits for in-flight image decodes and asynchronous saves.
func (s *Session) Close() {
	s.pending.Wait()
	if s.store != nil {
		s.store.Wait()
	}
}
