// Package app assembles the runtime from a Config: logger, snapshot store,
// render pipeline, exporter and the editing session.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-resumegen/internal/config"
	"github.com/goliatone/go-resumegen/internal/httpapi"
	"github.com/goliatone/go-resumegen/internal/logger"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/imaging"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
	"github.com/goliatone/go-resumegen/pkg/session"
	"github.com/goliatone/go-resumegen/pkg/store"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second

// App holds the wired components. Close releases them.
type App struct {
	Config      config.Config
	Log         *logger.Logger
	Store       *store.Handle
	Persistence *persistence.Adapter
	Pipeline    *orchestrator.Orchestrator
	Session     *session.Session
}

// Option adjusts wiring, mostly for tests.
type Option func(*wiring)

type wiring struct {
	log      *logger.Logger
	exporter export.Exporter
}

// WithLogger replaces the logger built from Config.LogMode.
func WithLogger(l *logger.Logger) Option {
	return func(w *wiring) {
		w.log = l
	}
}

// WithExporter replaces the headless Chrome exporter.
func WithExporter(e export.Exporter) Option {
	return func(w *wiring) {
		w.exporter = e
	}
}

// New wires every component described by cfg.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	w := &wiring{}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	log := w.log
	if log == nil {
		var err error
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, fmt.Errorf("app: logger: %w", err)
		}
	}

	registry, err := orchestrator.DefaultRegistry(html.WithTemplatesDir(cfg.TemplatesDir))
	if err != nil {
		return nil, fmt.Errorf("app: renderers: %w", err)
	}

	handle, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("app: store: %w", err)
	}
	log.Info("app: store opened", "driver", cfg.Store.Driver)

	adapterOpts := []persistence.Option{
		persistence.WithKey(cfg.StorageKey),
		persistence.WithLogger(log),
	}
	if cfg.AsyncSave {
		adapterOpts = append(adapterOpts, persistence.WithAsync())
	}
	adapter := persistence.New(handle, adapterOpts...)

	exporter := w.exporter
	if exporter == nil {
		exporter = export.NewChrome(
			export.WithExecPath(cfg.Chrome.ExecPath),
			export.WithTimeout(cfg.Chrome.Timeout),
		)
	}
	pipeline := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithExporter(exporter),
	)
	if err := pipeline.Err(); err != nil {
		handle.Close()
		return nil, err
	}

	tpl, _ := record.ParseTemplate(cfg.Template)
	s, err := session.New(ctx,
		session.WithPersistence(adapter),
		session.WithLogger(log),
		session.WithOrchestrator(pipeline),
		session.WithExportConfig(cfg.Export),
		session.WithImageDecoder(imaging.Decoder{Options: cfg.Image}),
		session.WithFirstRunTemplate(tpl),
	)
	if err != nil {
		handle.Close()
		return nil, err
	}

	return &App{
		Config:      cfg,
		Log:         log,
		Store:       handle,
		Persistence: adapter,
		Pipeline:    pipeline,
		Session:     s,
	}, nil
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	server := httpapi.NewApp(a.Session, a.Log)

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("app: listening", "addr", a.Config.Addr)
		errCh <- server.Listen(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.Log.Info("app: shutting down")
		if err := server.ShutdownWithTimeout(ShutdownTimeout); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	}
}

// Close waits for pending work, then releases the store.
func (a *App) Close() error {
	a.Session.Close()
	err := a.Store.Close()
	a.Log.Sync()
	return err
}
