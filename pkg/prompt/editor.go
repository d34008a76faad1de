// Package prompt is an interactive terminal editor for a resume session.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/logging"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/renderers/text"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
	"github.com/goliatone/go-resumegen/pkg/session"
)

// Action is a main menu entry.
type Action string

const (
	ActionEdit        Action = "Edit a section"
	ActionAdd         Action = "Add an entry"
	ActionRemove      Action = "Remove an entry"
	ActionMoveEntry   Action = "Move an entry"
	ActionMoveSection Action = "Move a section"
	ActionTemplate    Action = "Choose template"
	ActionImage       Action = "Set profile image"
	ActionClearImage  Action = "Remove profile image"
	ActionPreview     Action = "Preview"
	ActionExport      Action = "Export PDF"
	ActionClear       Action = "Clear all data"
	ActionQuit        Action = "Quit"
)

// Menu lists the main menu in display order.
var Menu = []Action{
	ActionEdit,
	ActionAdd,
	ActionRemove,
	ActionMoveEntry,
	ActionMoveSection,
	ActionTemplate,
	ActionImage,
	ActionClearImage,
	ActionPreview,
	ActionExport,
	ActionClear,
	ActionQuit,
}

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures an Editor.
type Option func(*Editor)

// WithDriver overrides the survey driver.
func WithDriver(driver Driver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(e *Editor) {
		e.theme = theme
	}
}

// WithExportConfig sets the page setup used by ActionExport.
func WithExportConfig(cfg export.Config) Option {
	return func(e *Editor) {
		e.exportCfg = cfg
	}
}

// WithFiles replaces file access for image selection and export output.
func WithFiles(read func(string) ([]byte, error), write func(string, []byte) error) Option {
	return func(e *Editor) {
		if read != nil {
			e.readFile = read
		}
		if write != nil {
			e.writeFile = write
		}
	}
}

// WithLogger sets the editor logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Editor) {
		e.log = logging.OrNop(l)
	}
}

// Editor walks a user through the form one prompt at a time. Every answer is
// applied to the session immediately.
type Editor struct {
	session   *session.Session
	driver    Driver
	theme     Theme
	exportCfg export.Config
	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte) error
	log       logging.Logger
}

// NewEditor binds an editor to s.
func NewEditor(s *session.Session, opts ...Option) (*Editor, error) {
	if s == nil {
		return nil, errors.New("prompt: session required")
	}
	e := &Editor{
		session:   s,
		driver:    NewSurveyDriver(os.Stdout),
		theme:     Theme{ErrorPrefix: "error: "},
		exportCfg: export.DefaultConfig(),
		readFile:  os.ReadFile,
		writeFile: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		return nil, ErrNoDriver
	}
	return e, nil
}

// Run loops over the main menu until the user quits. Abort and context
// errors end the loop; other failures are reported and the loop continues.
func (e *Editor) Run(ctx context.Context) error {
	labels := make([]string, len(Menu))
	for i, action := range Menu {
		labels[i] = string(action)
	}

	for {
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:  "What would you like to do?",
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(Menu) {
			continue
		}
		action := Menu[idx]
		if action == ActionQuit {
			return nil
		}

		if err := e.perform(ctx, action); err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return err
			}
			e.log.Warn("prompt: action failed", "action", string(action), "error", err)
			if infoErr := e.driver.Info(ctx, e.theme.ErrorPrefix+err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func (e *Editor) perform(ctx context.Context, action Action) error {
	switch action {
	case ActionEdit:
		return e.editSection(ctx)
	case ActionAdd:
		return e.addEntry(ctx)
	case ActionRemove:
		return e.removeEntry(ctx)
	case ActionMoveEntry:
		return e.moveEntry(ctx)
	case ActionMoveSection:
		return e.moveSection(ctx)
	case ActionTemplate:
		return e.chooseTemplate(ctx)
	case ActionImage:
		return e.selectImage(ctx)
	case ActionClearImage:
		e.session.ClearImage(ctx)
		return e.info(ctx, "Profile image removed.")
	case ActionPreview:
		return e.preview(ctx)
	case ActionExport:
		return e.export(ctx)
	case ActionClear:
		return e.clearAll(ctx)
	default:
		return fmt.Errorf("prompt: unknown action %q", action)
	}
}

func (e *Editor) info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

func (e *Editor) editSection(ctx context.Context) error {
	form := e.session.Form()
	options := make([]string, len(form.Groups))
	for i, g := range form.Groups {
		options[i] = g.Heading
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Section", Options: options})
	if err != nil || idx < 0 {
		return err
	}

	group := form.Groups[idx]
	if !group.Section.IsList() {
		return e.editFields(ctx, group.Fields)
	}
	entry, ok, err := e.chooseEntry(ctx, group.Section)
	if err != nil || !ok {
		return err
	}
	return e.editFields(ctx, entry.Fields)
}

func (e *Editor) editFields(ctx context.Context, fields []session.Field) error {
	for _, f := range fields {
		var (
			value string
			err   error
		)
		if f.Multiline {
			value, err = e.driver.TextArea(ctx, TextAreaConfig{Message: f.Label, Default: f.Value})
		} else {
			value, err = e.driver.Input(ctx, InputConfig{Message: f.Label, Default: f.Value})
		}
		if err != nil {
			return err
		}
		if value != f.Value {
			e.session.SetField(ctx, f.ID, value)
		}
	}
	return nil
}

func (e *Editor) chooseListSection(ctx context.Context) (record.SectionID, bool, error) {
	sections := record.ListSections()
	options := make([]string, len(sections))
	for i, id := range sections {
		options[i] = sectionHeading(e.session.Form(), id)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Section", Options: options})
	if err != nil || idx < 0 || idx >= len(sections) {
		return "", false, err
	}
	return sections[idx], true, nil
}

func (e *Editor) chooseEntry(ctx context.Context, section record.SectionID) (session.Entry, bool, error) {
	entries := groupOf(e.session.Form(), section).Entries
	if len(entries) == 0 {
		return session.Entry{}, false, e.info(ctx, "No entries yet.")
	}
	options := make([]string, len(entries))
	for i, entry := range entries {
		options[i] = entryLabel(entry)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Entry", Options: options})
	if err != nil || idx < 0 || idx >= len(entries) {
		return session.Entry{}, false, err
	}
	return entries[idx], true, nil
}

func (e *Editor) addEntry(ctx context.Context) error {
	section, ok, err := e.chooseListSection(ctx)
	if err != nil || !ok {
		return err
	}
	index, err := e.session.AddEntry(ctx, section, nil)
	if err != nil {
		return err
	}
	for _, entry := range groupOf(e.session.Form(), section).Entries {
		if entry.Slot.Index == index {
			return e.editFields(ctx, entry.Fields)
		}
	}
	return nil
}

func (e *Editor) removeEntry(ctx context.Context) error {
	section, ok, err := e.chooseListSection(ctx)
	if err != nil || !ok {
		return err
	}
	entry, ok, err := e.chooseEntry(ctx, section)
	if err != nil || !ok {
		return err
	}
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Remove " + entryLabel(entry) + "?"})
	if err != nil || !confirmed {
		return err
	}
	e.session.RemoveEntry(ctx, section, entry.Slot.Index)
	return nil
}

func (e *Editor) moveEntry(ctx context.Context) error {
	section, ok, err := e.chooseListSection(ctx)
	if err != nil || !ok {
		return err
	}
	entry, ok, err := e.chooseEntry(ctx, section)
	if err != nil || !ok {
		return err
	}

	var dirs []collection.Direction
	if entry.Slot.CanMoveUp {
		dirs = append(dirs, collection.Up)
	}
	if entry.Slot.CanMoveDown {
		dirs = append(dirs, collection.Down)
	}
	if len(dirs) == 0 {
		return e.info(ctx, "Nothing to move.")
	}
	options := make([]string, len(dirs))
	for i, d := range dirs {
		options[i] = string(d)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Direction", Options: options})
	if err != nil || idx < 0 || idx >= len(dirs) {
		return err
	}
	e.session.MoveEntry(ctx, section, entry.Slot.Index, dirs[idx])
	return nil
}

func (e *Editor) moveSection(ctx context.Context) error {
	form := e.session.Form()
	var movable []session.Group
	for _, g := range form.Groups {
		if g.Position.CanMoveUp || g.Position.CanMoveDown {
			movable = append(movable, g)
		}
	}
	options := make([]string, len(movable))
	for i, g := range movable {
		options[i] = g.Heading
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Section", Options: options})
	if err != nil || idx < 0 || idx >= len(movable) {
		return err
	}
	group := movable[idx]

	var dirs []sectionorder.Direction
	if group.Position.CanMoveUp {
		dirs = append(dirs, sectionorder.Up)
	}
	if group.Position.CanMoveDown {
		dirs = append(dirs, sectionorder.Down)
	}
	dirOptions := make([]string, len(dirs))
	for i, d := range dirs {
		dirOptions[i] = d.String()
	}
	idx, err = e.driver.Select(ctx, SelectConfig{Message: "Direction", Options: dirOptions})
	if err != nil || idx < 0 || idx >= len(dirs) {
		return err
	}
	e.session.MoveSection(ctx, group.Section, dirs[idx])
	return nil
}

func (e *Editor) chooseTemplate(ctx context.Context) error {
	form := e.session.Form()
	options := make([]string, len(form.Templates))
	current := 0
	for i, tpl := range form.Templates {
		options[i] = string(tpl)
		if tpl == form.Template {
			current = i
		}
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Template", Options: options, DefaultIndex: current})
	if err != nil || idx < 0 || idx >= len(options) {
		return err
	}
	return e.session.SelectTemplate(ctx, options[idx])
}

func (e *Editor) selectImage(ctx context.Context) error {
	path, err := e.driver.Input(ctx, InputConfig{Message: "Image file", Help: "Leave empty to remove the current image"})
	if err != nil {
		return err
	}
	var data []byte
	if path != "" {
		if data, err = e.readFile(path); err != nil {
			return err
		}
	}

	var result session.ImageResult
	select {
	case result = <-e.session.SelectImage(ctx, data):
	case <-ctx.Done():
		return ctx.Err()
	}
	switch {
	case result.Err != nil:
		return fmt.Errorf("image not loaded: %w", result.Err)
	case result.Applied:
		return e.info(ctx, fmt.Sprintf("Profile image set (%dx%d).", result.Image.Width, result.Image.Height))
	default:
		return e.info(ctx, "Profile image removed.")
	}
}

func (e *Editor) preview(ctx context.Context) error {
	out, _, err := e.session.Render(ctx, text.Name)
	if err != nil {
		return err
	}
	return e.driver.Info(ctx, string(out))
}

func (e *Editor) export(ctx context.Context) error {
	cfg := e.exportCfg
	name := export.FileName(e.session.Record().Personal.Name)
	if cfg.FileName != "" {
		name = cfg.FileName
	}
	path, err := e.driver.Input(ctx, InputConfig{Message: "Save PDF as", Default: name})
	if err != nil {
		return err
	}
	if path == "" {
		path = name
	}
	cfg.FileName = filepath.Base(path)

	artifact, err := e.session.Export(ctx, cfg)
	if err != nil {
		return err
	}
	if err := e.writeFile(path, artifact.Data); err != nil {
		return err
	}
	return e.info(ctx, fmt.Sprintf("Saved %s (%d bytes).", path, len(artifact.Data)))
}

func (e *Editor) clearAll(ctx context.Context) error {
	confirmed, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Erase all resume data?"})
	if err != nil || !confirmed {
		return err
	}
	e.session.ClearAll(ctx)
	return e.info(ctx, "All data cleared.")
}

func groupOf(form session.Form, section record.SectionID) session.Group {
	for _, g := range form.Groups {
		if g.Section == section {
			return g
		}
	}
	return session.Group{Section: section}
}

func sectionHeading(form session.Form, section record.SectionID) string {
	if g := groupOf(form, section); g.Heading != "" {
		return g.Heading
	}
	return string(section)
}

func entryLabel(entry session.Entry) string {
	if len(entry.Fields) > 0 && entry.Fields[0].Value != "" {
		return fmt.Sprintf("%s: %s", entry.Slot.Label, entry.Fields[0].Value)
	}
	return entry.Slot.Label
}
