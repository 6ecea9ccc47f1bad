package admin

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/cacti/internal/media"
	"github.com/example/cacti/internal/middleware"
	"github.com/example/cacti/internal/models"
	"github.com/example/cacti/internal/utils"
)

// Handler serves the back-office CRUD pages for the registered resources.
type Handler struct {
	db        *gorm.DB
	store     *media.Store
	resources []*Resource
	bySlug    map[string]*Resource
}

// NewHandler constructs a Handler over the given resources.
func NewHandler(db *gorm.DB, store *media.Store, resources []*Resource) *Handler {
	bySlug := make(map[string]*Resource, len(resources))
	for _, res := range resources {
		bySlug[res.Slug] = res
	}
	return &Handler{db: db, store: store, resources: resources, bySlug: bySlug}
}

func (h *Handler) resource(c *fiber.Ctx) (*Resource, error) {
	res, ok := h.bySlug[c.Params("resource")]
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "unknown resource")
	}
	return res, nil
}

// Dashboard lists the registered resources with their record counts.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	type entry struct {
		Slug  string
		Title string
		Count int64
	}

	entries := make([]entry, 0, len(h.resources))
	for _, res := range h.resources {
		count, err := res.Count(h.db)
		if err != nil {
			return err
		}
		entries = append(entries, entry{Slug: res.Slug, Title: res.Title, Count: count})
	}

	email := ""
	if user := middleware.CurrentIdentity(c).User(); user != nil {
		email = user.Email
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Resources": entries,
		"Email":     email,
	})
}

// List renders the paginated list view of a resource.
func (h *Handler) List(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	rows, total, err := res.List(h.db, pg)
	if err != nil {
		return err
	}

	return c.Render("admin/list", fiber.Map{
		"Title":    res.Title,
		"Slug":     res.Slug,
		"Columns":  res.Columns,
		"Rows":     rows,
		"HasPrev":  pg.Page > 1,
		"PrevPage": pg.Page - 1,
		"HasNext":  int64(pg.Offset+len(rows)) < total,
		"NextPage": pg.Page + 1,
	})
}

// NewForm renders an empty create form.
func (h *Handler) NewForm(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	return h.renderForm(c, res, NewFormValues(), 0, nil)
}

// Create handles a submitted create form.
func (h *Handler) Create(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	return h.save(c, res, 0)
}

// EditForm renders the edit form pre-filled with the stored record.
func (h *Handler) EditForm(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	}

	form, err := res.Fetch(h.db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "record not found")
		}
		return err
	}

	return h.renderForm(c, res, form, uint(id), nil)
}

// Update handles a submitted edit form.
func (h *Handler) Update(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	}
	return h.save(c, res, uint(id))
}

// Delete removes a record and returns to the list view.
func (h *Handler) Delete(c *fiber.Ctx) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	}

	if err := res.Delete(h.db, uint(id)); err != nil {
		return err
	}
	return c.Redirect("/admin/" + res.Slug)
}

func (h *Handler) save(c *fiber.Ctx, res *Resource, id uint) error {
	form, err := h.parseForm(c, res)
	if err != nil {
		return err
	}

	if err := res.Save(h.db, id, form); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return h.renderForm(c, res, form, id, verr.Messages)
		}
		return err
	}

	return c.Redirect("/admin/" + res.Slug)
}

// parseForm collects submitted values. Image fields read the uploaded file,
// store it through the media store and carry the stored filename onward;
// a missing upload leaves the field unset so edits keep the current image.
func (h *Handler) parseForm(c *fiber.Ctx, res *Resource) (*FormValues, error) {
	form := NewFormValues()

	for _, field := range res.Fields {
		switch field.Widget {
		case WidgetImage:
			header, err := c.FormFile(field.Name)
			if err != nil || header == nil {
				continue
			}
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, err
			}
			stored, err := h.store.Save(header.Filename, content)
			if err != nil {
				return nil, &ValidationError{Messages: []string{
					fmt.Sprintf("%s: not a valid image upload", field.Label),
				}}
			}
			form.Set(field.Name, stored)
		case WidgetMultiSelect:
			form.SetAll(field.Name, formValueAll(c, field.Name))
		default:
			form.Set(field.Name, c.FormValue(field.Name))
		}
	}

	return form, nil
}

func formValueAll(c *fiber.Ctx, name string) []string {
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		if vs, ok := mf.Value[name]; ok {
			return vs
		}
		return nil
	}

	raw := c.Context().PostArgs().PeekMulti(name)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	Name     string
	Label    string
	Widget   Widget
	Required bool
	Value    string
	Checked  bool
	ThumbURL string
	Options  []optionView
}

func (h *Handler) renderForm(c *fiber.Ctx, res *Resource, form *FormValues, id uint, errs []string) error {
	fields := make([]fieldView, 0, len(res.Fields))
	for _, field := range res.Fields {
		view := fieldView{
			Name:     field.Name,
			Label:    field.Label,
			Widget:   field.Widget,
			Required: field.Required,
			Value:    form.Get(field.Name),
		}

		if field.Widget == WidgetCheckbox {
			view.Checked = form.Get(field.Name) == "1"
		}

		if field.Widget == WidgetImage && view.Value != "" {
			view.ThumbURL = "/static/media/" + models.ThumbName(view.Value)
		}

		if field.Options != nil {
			options, err := field.Options(h.db)
			if err != nil {
				return err
			}
			selected := form.GetAll(field.Name)
			for _, opt := range options {
				view.Options = append(view.Options, optionView{
					Value:    opt.Value,
					Label:    opt.Label,
					Selected: contains(selected, opt.Value),
				})
			}
		}

		fields = append(fields, view)
	}

	action := "/admin/" + res.Slug + "/new"
	if id != 0 {
		action = fmt.Sprintf("/admin/%s/%d/edit", res.Slug, id)
	}

	status := fiber.StatusOK
	if len(errs) > 0 {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).Render("admin/form", fiber.Map{
		"Title":  res.Title,
		"Slug":   res.Slug,
		"Action": action,
		"Fields": fields,
		"Errors": errs,
	})
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
