package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/prompt"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
)

func newServeCmd(rt *runtime) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP editing API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				rt.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := rt.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides configuration)")
	return cmd
}

func newEditCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the stored resume interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			driver := rt.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
			}
			editor, err := prompt.NewEditor(a.Session,
				prompt.WithDriver(driver),
				prompt.WithLogger(a.Log),
				prompt.WithExportConfig(rt.cfg.Export),
			)
			if err != nil {
				return err
			}
			if err := editor.Run(cmd.Context()); err != nil && !errors.Is(err, prompt.ErrAborted) {
				return err
			}
			return nil
		},
	}
}

func newSetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value> [<field> <value>...]",
		Short: "Set fields by identifier, e.g. name or experience[0].title",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("expected field/value pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			for i := 0; i < len(args); i += 2 {
				if !a.Session.SetField(cmd.Context(), args[i], args[i+1]) {
					fmt.Fprintf(cmd.ErrOrStderr(), "ignored %s\n", args[i])
				}
			}
			return nil
		},
	}
}

// recordSource renders either the stored record or a snapshot file.
type recordSource struct {
	file string
}

func (s *recordSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "record", "", "render this snapshot file instead of the stored record")
}

func (s *recordSource) request(rt *runtime, cmd *cobra.Command) (orchestrator.Request, func(), error) {
	if s.file != "" {
		data, err := os.ReadFile(s.file)
		if err != nil {
			return orchestrator.Request{}, nil, err
		}
		rec, err := persistence.Decode(data, true)
		if err != nil {
			return orchestrator.Request{}, nil, err
		}
		return orchestrator.Request{Record: rec}, func() {}, nil
	}

	a, err := rt.open(cmd.Context())
	if err != nil {
		return orchestrator.Request{}, nil, err
	}
	doc := a.Session.Preview()
	return orchestrator.Request{Document: &doc}, func() { a.Close() }, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func newRenderCmd(rt *runtime) *cobra.Command {
	var (
		format string
		output string
		src    recordSource
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the resume as html, text or json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, done, err := src.request(rt, cmd)
			if err != nil {
				return err
			}
			defer done()

			pipeline, err := rt.pipeline()
			if err != nil {
				return err
			}
			if registry := pipeline.Registry(); !registry.Has(format) {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.List(), ", "))
			}
			req.Renderer = format
			data, err := pipeline.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", html.Name, "output format (html, text, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	src.bind(cmd)
	return cmd
}

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		output    string
		pageSize  string
		margins   float64
		scale     float64
		landscape bool
		src       recordSource
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the resume as PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := rt.cfg.Export
			flags := cmd.Flags()
			if flags.Changed("page-size") {
				size, ok := export.ParsePageSize(pageSize)
				if !ok {
					return fmt.Errorf("%w: page size %q", export.ErrInvalidConfig, pageSize)
				}
				cfg.PageSize = size
			}
			if flags.Changed("margins") {
				cfg.MarginsMM = margins
			}
			if flags.Changed("scale") {
				cfg.Scale = scale
			}
			if flags.Changed("landscape") {
				cfg.Landscape = landscape
			}
			cfg = cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return err
			}

			req, done, err := src.request(rt, cmd)
			if err != nil {
				return err
			}
			defer done()

			if output == "" {
				name := cfg.FileName
				if name == "" {
					name = export.FileName(personalName(req))
				}
				output = name
			}

			pipeline, err := rt.pipeline()
			if err != nil {
				return err
			}
			data, err := pipeline.Export(cmd.Context(), req, cfg)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (derived from the name if empty, - for stdout)")
	flags.StringVar(&pageSize, "page-size", "", "A4, Letter or Legal")
	flags.Float64Var(&margins, "margins", 0, "margins in millimetres")
	flags.Float64Var(&scale, "scale", 0, "render scale between 0.1 and 2")
	flags.BoolVar(&landscape, "landscape", false, "landscape orientation")
	src.bind(cmd)
	return cmd
}

func personalName(req orchestrator.Request) string {
	switch {
	case req.Record != nil:
		return req.Record.Personal.Name
	case req.Document != nil:
		if block, ok := req.Document.Block(record.SectionPersonal); ok && block.Personal != nil {
			return block.Personal.Name
		}
	}
	return ""
}

func newClearCmd(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase the stored resume",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			a, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			a.Session.ClearAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of stored snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(persistence.SchemaJSON())
			return err
		},
	}
}
