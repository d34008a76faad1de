package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/imaging"
	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
	"github.com/goliatone/go-resumegen/pkg/session"
	"github.com/goliatone/go-resumegen/pkg/store/memory"
)

func newSession(t *testing.T, opts ...session.Option) (*session.Session, *memory.Store) {
	t.Helper()
	backing := memory.New()
	opts = append([]session.Option{session.WithPersistence(persistence.New(backing))}, opts...)
	s, err := session.New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, backing
}

func TestSession_EditPreviewAndRestore(t *testing.T) {
	ctx := context.Background()
	s, backing := newSession(t)

	require.True(t, s.SetField(ctx, "name", "Ada Lovelace"))
	require.True(t, s.SetField(ctx, "experience[0].title", "Engineer"))
	require.True(t, s.SetField(ctx, "experience[0].company", "Acme"))
	assert.False(t, s.SetField(ctx, "experience[0].salary", "1"), "unknown field must be ignored")

	doc := s.Preview()
	personal, ok := doc.Block(record.SectionPersonal)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", personal.Personal.Name)

	exp, ok := doc.Block(record.SectionExperience)
	require.True(t, ok)
	require.Len(t, exp.Entries, 1)
	assert.Equal(t, "Engineer, Acme", exp.Entries[0].Title)

	restored, err := session.New(ctx, session.WithPersistence(persistence.New(backing)))
	require.NoError(t, err)
	assert.Equal(t, s.Record(), restored.Record())

	require.True(t, s.RemoveEntry(ctx, record.SectionExperience, 0))
	_, ok = s.Preview().Block(record.SectionExperience)
	assert.False(t, ok, "experience block must disappear with its only entry")
	assert.False(t, s.RemoveEntry(ctx, record.SectionExperience, 0))
}

func TestSession_CollectionCommands(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	indexes, err := s.AddEntries(ctx, record.SectionProject, []collection.Values{
		{"name": "Engine"},
		{"name": "Loom"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, indexes)

	require.True(t, s.MoveEntry(ctx, record.SectionProject, 2, collection.Up))
	assert.False(t, s.MoveEntry(ctx, record.SectionProject, 0, collection.Up))

	rec := s.Record()
	assert.Equal(t, "Loom", rec.Project[1].Name)
	assert.Equal(t, "Engine", rec.Project[2].Name)

	slots, err := s.Slots(record.SectionProject)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.False(t, slots[0].CanMoveUp)
	assert.False(t, slots[2].CanMoveDown)

	_, err = s.AddEntry(ctx, record.SectionSummary, nil)
	assert.ErrorIs(t, err, collection.ErrNotListSection)
}

func TestSession_MoveSectionAndForm(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	assert.False(t, s.MoveSection(ctx, record.SectionPersonal, sectionorder.Down))
	assert.False(t, s.MoveSection(ctx, record.SectionSummary, sectionorder.Up))
	require.True(t, s.MoveSection(ctx, record.SectionSkills, sectionorder.Up))

	form := s.Form()
	require.Len(t, form.Groups, 6)
	got := make([]record.SectionID, 0, len(form.Groups))
	for _, g := range form.Groups {
		got = append(got, g.Section)
	}
	assert.Equal(t, []record.SectionID{"personal", "summary", "experience", "skills", "education", "project"}, got)

	personal := form.Groups[0]
	assert.True(t, personal.Position.Pinned)
	assert.Len(t, personal.Fields, 6)

	exp := form.Groups[2]
	require.Len(t, exp.Entries, 1)
	assert.Equal(t, "experience[0].title", exp.Entries[0].Fields[0].ID)
	assert.True(t, exp.Entries[0].Fields[4].Multiline)
	assert.False(t, form.HasImage)
}

func TestSession_SelectTemplate(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	require.True(t, s.SetField(ctx, "summary", "Analyst"))
	before := s.Record()

	err := s.SelectTemplate(ctx, "retro")
	require.ErrorIs(t, err, session.ErrUnknownTemplate)
	assert.Equal(t, before, s.Record())

	require.NoError(t, s.SelectTemplate(ctx, "modern"))
	after := s.Record()
	assert.Equal(t, record.TemplateModern, after.CurrentTemplate)
	after.CurrentTemplate = before.CurrentTemplate
	assert.Equal(t, before, after, "only the template tag may change")
	assert.Equal(t, record.TemplateModern, s.Preview().Template)
}

func TestSession_RenderFormats(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)
	require.True(t, s.SetField(ctx, "name", "Ada Lovelace"))

	out, contentType, err := s.Render(ctx, "text")
	require.NoError(t, err)
	assert.Contains(t, contentType, "text/plain")
	assert.True(t, strings.HasPrefix(string(out), "Ada Lovelace\n"))

	out, _, err = s.Render(ctx, "html")
	require.NoError(t, err)
	assert.Contains(t, string(out), `data-template="default"`)

	_, _, err = s.Render(ctx, "docx")
	assert.Error(t, err)
}

func TestSession_ClearAll(t *testing.T) {
	ctx := context.Background()
	s, backing := newSession(t)
	require.True(t, s.SetField(ctx, "name", "Ada"))
	require.True(t, s.MoveSection(ctx, record.SectionProject, sectionorder.Up))

	s.ClearAll(ctx)

	assert.Equal(t, record.New(), s.Record())
	_, err := backing.Get(ctx, persistence.DefaultKey)
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

type decoderFunc func(ctx context.Context, data []byte) (imaging.Image, error)

func (f decoderFunc) Decode(ctx context.Context, data []byte) (imaging.Image, error) {
	return f(ctx, data)
}

func TestSession_StaleImageDiscarded(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	decoder := decoderFunc(func(_ context.Context, data []byte) (imaging.Image, error) {
		if string(data) == "slow" {
			<-release
		}
		return imaging.Image{DataURI: "data:image/png;base64," + string(data), MIME: "image/png"}, nil
	})
	s, _ := newSession(t, session.WithImageDecoder(decoder))

	slow := s.SelectImage(ctx, []byte("slow"))
	fast := <-s.SelectImage(ctx, []byte("fast"))
	require.True(t, fast.Applied)

	close(release)
	stale := <-slow
	assert.True(t, stale.Stale)
	assert.False(t, stale.Applied)
	assert.Equal(t, "data:image/png;base64,fast", s.Record().Personal.ProfileImage)
	assert.True(t, s.Form().HasImage)
}

func TestSession_ImageFailureAndClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession(t)

	ok := <-s.SelectImage(ctx, pngBytes(t))
	require.NoError(t, ok.Err)
	require.True(t, ok.Applied)
	assert.True(t, strings.HasPrefix(s.Record().Personal.ProfileImage, "data:image/png;base64,"))

	failed := <-s.SelectImage(ctx, []byte("not an image"))
	require.Error(t, failed.Err)
	assert.True(t, failed.Cleared)
	assert.Empty(t, s.Record().Personal.ProfileImage)

	<-s.SelectImage(ctx, pngBytes(t))
	cleared := <-s.SelectImage(ctx, nil)
	assert.True(t, cleared.Cleared)
	assert.NoError(t, cleared.Err)
	assert.Empty(t, s.Record().Personal.ProfileImage)
}

func TestSession_ClearImageInvalidatesPending(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	decoder := decoderFunc(func(context.Context, []byte) (imaging.Image, error) {
		<-release
		return imaging.Image{DataURI: "data:image/png;base64,AAAA"}, nil
	})
	s, _ := newSession(t, session.WithImageDecoder(decoder))

	pending := s.SelectImage(ctx, []byte("x"))
	s.ClearImage(ctx)
	close(release)

	assert.True(t, (<-pending).Stale)
	assert.Empty(t, s.Record().Personal.ProfileImage)
}

func TestSession_Export(t *testing.T) {
	ctx := context.Background()
	var gotHTML string
	var gotCfg export.Config
	exporter := export.ExporterFunc(func(_ context.Context, html []byte, cfg export.Config) ([]byte, error) {
		gotHTML = string(html)
		gotCfg = cfg
		return []byte("%PDF-1.4"), nil
	})
	s, _ := newSession(t, session.WithExporter(exporter))
	require.True(t, s.SetField(ctx, "name", "Ada Lovelace"))
	before := s.Record()

	artifact, err := s.Export(ctx, export.Config{})
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", artifact.FileName)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), artifact.Data)
	assert.NotEmpty(t, artifact.ID)
	assert.Contains(t, gotHTML, `data-variant="print"`)
	assert.Equal(t, export.DefaultConfig().PageSize, gotCfg.PageSize)
	assert.Equal(t, before, s.Record())
	assert.False(t, s.Busy())
}

func TestSession_ExportFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("browser crashed")
	exporter := export.ExporterFunc(func(context.Context, []byte, export.Config) ([]byte, error) {
		return nil, boom
	})
	s, _ := newSession(t, session.WithExporter(exporter))
	require.True(t, s.SetField(ctx, "summary", "Analyst"))
	before := s.Record()

	_, err := s.Export(ctx, export.Config{})
	require.ErrorIs(t, err, session.ErrExport)
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Busy())
	assert.Equal(t, before, s.Record())
}

func TestSession_ExportBusy(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	exporter := export.ExporterFunc(func(context.Context, []byte, export.Config) ([]byte, error) {
		close(started)
		<-release
		return []byte("%PDF"), nil
	})
	s, _ := newSession(t, session.WithExporter(exporter))

	done := make(chan error, 1)
	go func() {
		_, err := s.Export(ctx, export.Config{})
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("export did not start")
	}
	assert.True(t, s.Busy())
	assert.True(t, s.Form().Busy)

	_, err := s.Export(ctx, export.Config{})
	assert.ErrorIs(t, err, session.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Busy())
}

func TestSession_ExportRequiresExporter(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Export(context.Background(), export.Config{})
	assert.ErrorIs(t, err, session.ErrNoExporter)
}
