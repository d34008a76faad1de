package httpapi

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-resumegen/pkg/collection"
	"github.com/goliatone/go-resumegen/pkg/export"
	"github.com/goliatone/go-resumegen/pkg/fieldpath"
	"github.com/goliatone/go-resumegen/pkg/logging"
	"github.com/goliatone/go-resumegen/pkg/record"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/html"
	"github.com/goliatone/go-resumegen/pkg/sectionorder"
	"github.com/goliatone/go-resumegen/pkg/session"
)

// Handler serves one session.
type Handler struct {
	session *session.Session
	log     logging.Logger
}

func NewHandler(s *session.Session, log logging.Logger) *Handler {
	return &Handler{session: s, log: logging.OrNop(log)}
}

// Register mounts the routes on router.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/", h.GetPreview)
	router.Get("/record", h.GetRecord)
	router.Delete("/record", h.ClearAll)
	router.Get("/form", h.GetForm)
	router.Get("/preview", h.GetPreview)

	router.Post("/fields", h.SetField)
	router.Post("/sections/:section/entries", h.AddEntry)
	router.Patch("/sections/:section/entries/:index", h.EditEntry)
	router.Delete("/sections/:section/entries/:index", h.RemoveEntry)
	router.Post("/sections/:section/entries/:index/move", h.MoveEntry)
	router.Post("/order/:section/move", h.MoveSection)

	router.Put("/template", h.SelectTemplate)
	router.Post("/image", h.SelectImage)
	router.Delete("/image", h.ClearImage)
	router.Post("/export", h.Export)
}

type fieldReq struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type entryFieldReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type moveReq struct {
	Direction string `json:"direction"`
}

type templateReq struct {
	Name string `json:"name"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func changed(c *fiber.Ctx, ok bool) error {
	return c.JSON(fiber.Map{"changed": ok})
}

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func (h *Handler) GetRecord(c *fiber.Ctx) error {
	return c.JSON(h.session.Record())
}

func (h *Handler) GetForm(c *fiber.Ctx) error {
	return c.JSON(h.session.Form())
}

func (h *Handler) GetPreview(c *fiber.Ctx) error {
	format := c.Query("format", html.Name)
	out, contentType, err := h.session.Render(c.UserContext(), format)
	if err != nil {
		if errors.Is(err, render.ErrUnknownRenderer) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown format " + strconv.Quote(format)})
		}
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(out)
}

func (h *Handler) SetField(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if _, err := fieldpath.Parse(req.ID, req.Value); errors.Is(err, fieldpath.ErrInvalidIndex) {
		return badRequest(c, err.Error())
	}
	return changed(c, h.session.SetField(c.UserContext(), req.ID, req.Value))
}

func listSection(c *fiber.Ctx) (record.SectionID, bool) {
	id := record.SectionID(c.Params("section"))
	return id, id.IsList()
}

func entryIndex(c *fiber.Ctx) (int, bool) {
	index, err := strconv.Atoi(c.Params("index"))
	return index, err == nil && index >= 0
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	section, ok := listSection(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not a list section"})
	}
	values := collection.Values{}
	if err := parseBody(c, &values); err != nil {
		return badRequest(c, "invalid payload")
	}
	index, err := h.session.AddEntry(c.UserContext(), section, values)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"index": index})
}

func (h *Handler) EditEntry(c *fiber.Ctx) error {
	section, ok := listSection(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not a list section"})
	}
	index, ok := entryIndex(c)
	if !ok {
		return badRequest(c, "invalid index")
	}
	var req entryFieldReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	edit, err := fieldpath.NewListFieldEdit(section, index, req.Field, req.Value)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return changed(c, h.session.Apply(c.UserContext(), edit))
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	section, ok := listSection(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not a list section"})
	}
	index, ok := entryIndex(c)
	if !ok {
		return badRequest(c, "invalid index")
	}
	return changed(c, h.session.RemoveEntry(c.UserContext(), section, index))
}

func (h *Handler) MoveEntry(c *fiber.Ctx) error {
	section, ok := listSection(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not a list section"})
	}
	index, ok := entryIndex(c)
	if !ok {
		return badRequest(c, "invalid index")
	}
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	dir, ok := collection.ParseDirection(req.Direction)
	if !ok {
		return badRequest(c, "direction must be up or down")
	}
	return changed(c, h.session.MoveEntry(c.UserContext(), section, index, dir))
}

func (h *Handler) MoveSection(c *fiber.Ctx) error {
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	dir, ok := sectionorder.ParseDirection(req.Direction)
	if !ok {
		return badRequest(c, "direction must be up or down")
	}
	id := record.SectionID(c.Params("section"))
	return changed(c, h.session.MoveSection(c.UserContext(), id, dir))
}

func (h *Handler) SelectTemplate(c *fiber.Ctx) error {
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := h.session.SelectTemplate(c.UserContext(), req.Name); err != nil {
		if errors.Is(err, session.ErrUnknownTemplate) {
			return badRequest(c, err.Error())
		}
		return err
	}
	return c.JSON(fiber.Map{"template": req.Name})
}

// SelectImage accepts a multipart "file" field or the raw request body. An
// empty upload clears the image.
func (h *Handler) SelectImage(c *fiber.Ctx) error {
	data, err := uploadedImage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var result session.ImageResult
	select {
	case result = <-h.session.SelectImage(c.UserContext(), data):
	case <-c.UserContext().Done():
		return c.UserContext().Err()
	}

	switch {
	case result.Stale:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "superseded by a newer image"})
	case result.Err != nil:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": result.Err.Error(), "cleared": true})
	case result.Applied:
		return c.JSON(fiber.Map{
			"applied": true,
			"mime":    result.Image.MIME,
			"width":   result.Image.Width,
			"height":  result.Image.Height,
		})
	default:
		return c.JSON(fiber.Map{"cleared": true})
	}
}

func uploadedImage(c *fiber.Ctx) ([]byte, error) {
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["file"]
		if len(files) == 0 {
			return nil, nil
		}
		f, err := files[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return append([]byte(nil), c.Body()...), nil
}

func (h *Handler) ClearImage(c *fiber.Ctx) error {
	h.session.ClearImage(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ClearAll(c *fiber.Ctx) error {
	h.session.ClearAll(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	var cfg export.Config
	if err := parseBody(c, &cfg); err != nil {
		return badRequest(c, "invalid payload")
	}

	artifact, err := h.session.Export(c.UserContext(), cfg)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, session.ErrNoExporter):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, export.ErrInvalidConfig):
		return badRequest(c, err.Error())
	case errors.Is(err, session.ErrExport):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		return err
	}

	c.Set("X-Export-ID", artifact.ID)
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Attachment(artifact.FileName)
	return c.Send(artifact.Data)
}
