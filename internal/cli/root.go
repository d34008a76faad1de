// Package cli implements the resumegen command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-resumegen/internal/app"
	"github.com/goliatone/go-resumegen/internal/config"
	"github.com/goliatone/go-resumegen/internal/logger"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/prompt"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
)

// AppName is the binary name.
const AppName = "resumegen"

// Option adjusts the command tree, mostly for tests.
type Option func(*runtime)

// WithExporter replaces the headless Chrome exporter.
func WithExporter(e export.Exporter) Option {
	return func(r *runtime) {
		r.exporter = e
	}
}

// WithLogger replaces the logger built from configuration.
func WithLogger(l *logger.Logger) Option {
	return func(r *runtime) {
		r.log = l
	}
}

// WithPromptDriver replaces the survey driver used by "edit".
func WithPromptDriver(d prompt.Driver) Option {
	return func(r *runtime) {
		r.driver = d
	}
}

type runtime struct {
	configFile string
	envFile    string
	store      string
	boltPath   string
	logMode    string
	tplDir     string

	cfg      config.Config
	exporter export.Exporter
	log      *logger.Logger
	driver   prompt.Driver
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	rt := &runtime{}
	for _, opt := range opts {
		if opt != nil {
			opt(rt)
		}
	}

	root := &cobra.Command{
		Use:   AppName,
		Short: "Build a resume from structured data",
		Long: `resumegen keeps a resume record in a snapshot store, renders it with one of
three templates and exports it as PDF. Use "serve" for the HTTP editor, "edit"
for the terminal editor, or the one-shot commands for scripting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&rt.configFile, "config", "c", "", "YAML configuration file")
	flags.StringVar(&rt.envFile, "env-file", ".env", "dotenv file read before RESUMEGEN_* variables")
	flags.StringVar(&rt.store, "store", "", "snapshot store driver (memory, bolt, redis, postgres)")
	flags.StringVar(&rt.boltPath, "bolt-path", "", "bolt database path")
	flags.StringVar(&rt.logMode, "log-mode", "", "log mode (dev, debug, prod)")
	flags.StringVar(&rt.tplDir, "templates-dir", "", "directory overlaying the bundled HTML templates")

	root.AddCommand(
		newServeCmd(rt),
		newEditCmd(rt),
		newSetCmd(rt),
		newRenderCmd(rt),
		newExportCmd(rt),
		newClearCmd(rt),
		newSchemaCmd(),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, opts ...Option) error {
	return NewRootCmd(opts...).ExecuteContext(ctx)
}

func (rt *runtime) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(config.WithFile(rt.configFile), config.WithEnvFile(rt.envFile))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Driver = rt.store
	}
	if flags.Changed("bolt-path") {
		cfg.Store.BoltPath = rt.boltPath
	}
	if flags.Changed("log-mode") {
		cfg.LogMode = rt.logMode
	}
	if flags.Changed("templates-dir") {
		cfg.TemplatesDir = rt.tplDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *runtime) open(ctx context.Context) (*app.App, error) {
	var opts []app.Option
	if rt.exporter != nil {
		opts = append(opts, app.WithExporter(rt.exporter))
	}
	if rt.log != nil {
		opts = append(opts, app.WithLogger(rt.log))
	}
	a, err := app.New(ctx, rt.cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", AppName, err)
	}
	return a, nil
}

// pipeline builds a session-less orchestrator for the one-shot commands.
func (rt *runtime) pipeline() (*orchestrator.Orchestrator, error) {
	registry, err := orchestrator.DefaultRegistry(html.WithTemplatesDir(rt.cfg.TemplatesDir))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", AppName, err)
	}
	exporter := rt.exporter
	if exporter == nil {
		exporter = export.NewChrome(
			export.WithExecPath(rt.cfg.Chrome.ExecPath),
			export.WithTimeout(rt.cfg.Chrome.Timeout),
		)
	}
	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithExporter(exporter),
	), nil
}
