// Package persistence saves and restores the Record as a single JSON snapshot
// under a fixed key of a byte store. Failures are logged, never returned to
// the session: in-memory state stays authoritative.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-resumegen/pkg/logging"
	"github.com/goliatone/go-resumegen/pkg/record"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "resumeData"

// ErrInvalidSnapshot marks stored data that decodes but fails the schema.
var ErrInvalidSnapshot = errors.New("persistence: invalid snapshot")

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			a.key = trimmed
		}
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l logging.Logger) Option {
	return func(a *Adapter) {
		a.log = logging.OrNop(l)
	}
}

// WithAsync makes Save return immediately and write in a goroutine. When
// saves overlap only the newest snapshot is written.
func WithAsync() Option {
	return func(a *Adapter) {
		a.async = true
	}
}

// WithoutSchemaCheck skips schema validation on Load.
func WithoutSchemaCheck() Option {
	return func(a *Adapter) {
		a.skipSchema = true
	}
}

// Adapter binds a Store to the Record snapshot format.
type Adapter struct {
	store      Store
	key        string
	log        logging.Logger
	async      bool
	skipSchema bool

	mu      sync.Mutex
	seq     uint64
	written uint64
	wg      sync.WaitGroup
}

// New constructs an Adapter over store.
func New(store Store, opts ...Option) *Adapter {
	a := &Adapter{
		store: store,
		key:   DefaultKey,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Key returns the storage key.
func (a *Adapter) Key() string { return a.key }

// Save overwrites the snapshot with rec. Errors are logged.
func (a *Adapter) Save(ctx context.Context, rec *record.Record) {
	if rec == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		a.log.Error("persistence: encode snapshot failed", "key", a.key, "error", err)
		return
	}

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.mu.Unlock()

	if !a.async {
		a.write(ctx, seq, data)
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.write(context.WithoutCancel(ctx), seq, data)
	}()
}

func (a *Adapter) write(ctx context.Context, seq uint64, data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if seq < a.written {
		a.log.Debug("persistence: stale save skipped", "key", a.key, "seq", seq)
		return
	}
	if err := a.store.Set(ctx, a.key, data); err != nil {
		a.log.Warn("persistence: save failed", "key", a.key, "error", err)
		return
	}
	a.written = seq
}

// Wait blocks until pending asynchronous saves have finished.
func (a *Adapter) Wait() {
	a.wg.Wait()
}

// Load returns the stored Record, repaired for legacy and partial snapshots.
// ok is false when there is no usable snapshot; corrupt data is logged and
// treated as absent.
func (a *Adapter) Load(ctx context.Context) (*record.Record, bool) {
	rec, err := a.load(ctx)
	switch {
	case err == nil:
		return rec, true
	case errors.Is(err, ErrNotFound):
		a.log.Debug("persistence: no snapshot", "key", a.key)
	default:
		a.log.Warn("persistence: snapshot unusable, using defaults", "key", a.key, "error", err)
	}
	return nil, false
}

func (a *Adapter) load(ctx context.Context) (*record.Record, error) {
	data, err := a.store.Get(ctx, a.key)
	if err != nil {
		return nil, err
	}
	return Decode(data, !a.skipSchema)
}

// Decode parses snapshot bytes, optionally checking them against the record
// schema first, and repairs the result.
func Decode(data []byte, checkSchema bool) (*record.Record, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidSnapshot)
	}
	if checkSchema {
		if err := ValidateSnapshot(data); err != nil {
			return nil, err
		}
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	rec.Repair()
	return &rec, nil
}

// Clear deletes the snapshot. Pending asynchronous saves are invalidated so
// they cannot recreate it.
func (a *Adapter) Clear(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++
	a.written = a.seq
	if err := a.store.Delete(ctx, a.key); err != nil && !errors.Is(err, ErrNotFound) {
		a.log.Warn("persistence: clear failed", "key", a.key, "error", err)
	}
}
