// Package export turns rendered resume HTML into a paginated PDF.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Exporter converts a fully rendered HTML page into document bytes.
type Exporter interface {
	Export(ctx context.Context, html []byte, cfg Config) ([]byte, error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, html []byte, cfg Config) ([]byte, error)

func (f ExporterFunc) Export(ctx context.Context, html []byte, cfg Config) ([]byte, error) {
	return f(ctx, html, cfg)
}

// Option configures Chrome.
type Option func(*Chrome)

// WithExecPath points at a Chrome/Chromium binary.
func WithExecPath(path string) Option {
	return func(c *Chrome) {
		c.execPath = path
	}
}

// WithTimeout bounds a single export.
func WithTimeout(d time.Duration) Option {
	return func(c *Chrome) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Chrome prints through a headless browser started per export.
type Chrome struct {
	execPath string
	timeout  time.Duration
}

var _ Exporter = (*Chrome)(nil)

func NewChrome(opts ...Option) *Chrome {
	c := &Chrome{timeout: 60 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Export writes html to a temporary directory, loads it and prints it.
func (c *Chrome) Export(ctx context.Context, html []byte, cfg Config) ([]byte, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, c.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resumegen-export-")
	if err != nil {
		return nil, fmt.Errorf("export: temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, fmt.Errorf("export: write html: %w", err)
	}

	width, height := cfg.PageSize.Inches()
	margin := cfg.MarginsMM / 25.4

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithLandscape(cfg.Landscape).
				WithScale(cfg.Scale).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("export: print pdf: %w", err)
	}
	return pdf, nil
}
