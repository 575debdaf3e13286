package doctors

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/panel"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/internal/platform/view"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Handler serves the doctors panel page.
type Handler struct {
	client *Client
	limit  int
	logger zerolog.Logger
}

func NewHandler(client *Client, limit int, logger zerolog.Logger) *Handler {
	return &Handler{
		client: client,
		limit:  limit,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/doctors", h.ListPage)
	e.GET("/doctors/new", h.NewPage)
	e.GET("/doctors/:id/edit", h.EditPage)
	e.POST("/doctors", h.Create)
	e.POST("/doctors/:id", h.Update)
	e.GET("/doctors/:id/delete", h.ConfirmDelete)
	e.POST("/doctors/:id/delete", h.Delete)
}

type formData struct {
	Mode   panel.FormMode
	EditID int
	Draft  Draft
	Error  string
}

type pageData struct {
	Title     string
	Active    string
	Nav       []view.NavItem
	State     string
	LoadError string
	Banner    string
	Query     string
	Items     []*Doctor
	Form      *formData
	Paging    view.Paging
}

// buildPage loads a fresh store for this request and assembles the page data.
// A failed list fetch puts the page in the error state rather than failing
// the request. Each request gets its own store so concurrent pages never see
// each other's state.
func (h *Handler) buildPage(c echo.Context, form *formData) (pageData, *Store) {
	store := NewStore(h.client)
	p := listing.FromQuery(c.QueryParams(), h.limit)
	if err := store.Refresh(c.Request().Context(), p); err != nil {
		h.logger.Error().Err(err).Msg("doctor list fetch failed")
	}
	items, state, loadErr := store.Snapshot()

	query := c.QueryParam("q")
	return pageData{
		Title:     "Doctors",
		Active:    "doctors",
		Nav:       view.NavItems(),
		State:     state.String(),
		LoadError: loadErr,
		Query:     query,
		Items:     Filter(items, query),
		Form:      form,
		Paging:    view.NewPaging("/doctors", p, len(items), c.QueryParams()),
	}, store
}

func (h *Handler) ListPage(c echo.Context) error {
	data, _ := h.buildPage(c, nil)
	return c.Render(http.StatusOK, "doctors", data)
}

func (h *Handler) NewPage(c echo.Context) error {
	form := &formData{Mode: panel.FormCreate}
	data, _ := h.buildPage(c, form)
	return c.Render(http.StatusOK, "doctors", data)
}

func (h *Handler) EditPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	data, store := h.buildPage(c, nil)

	// Seed the draft from the freshly loaded list; fall back to a direct
	// fetch for entities beyond the current page window.
	doc, ok := store.FindByID(id)
	if !ok {
		doc, err = h.client.Get(c.Request().Context(), id)
		if err != nil {
			data.Banner = rest.Message(err)
			return c.Render(http.StatusOK, "doctors", data)
		}
	}

	data.Form = &formData{Mode: panel.FormEdit, EditID: id, Draft: DraftOf(doc)}
	return c.Render(http.StatusOK, "doctors", data)
}

func (h *Handler) Create(c echo.Context) error {
	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "doctors", data)
	}

	if _, err := h.client.Create(c.Request().Context(), draft); err != nil {
		h.logger.Error().Err(err).Msg("doctor create failed")
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "doctors", data)
	}

	return c.Redirect(http.StatusSeeOther, "/doctors")
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "doctors", data)
	}

	if _, err := h.client.Update(c.Request().Context(), id, draft); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("doctor update failed")
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "doctors", data)
	}

	return c.Redirect(http.StatusSeeOther, "/doctors")
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	doc, err := h.client.Get(c.Request().Context(), id)
	if err != nil {
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "doctors", data)
	}

	return c.Render(http.StatusOK, "confirm_delete", view.ConfirmData{
		Title:      "Delete doctor",
		Active:     "doctors",
		Nav:        view.NavItems(),
		Prompt:     "Delete doctor " + doc.Name + "?",
		Detail:     doc.Specialization + " · " + doc.Email,
		ActionPath: "/doctors/" + strconv.Itoa(id) + "/delete",
		CancelPath: "/doctors",
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.client.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("doctor delete failed")
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "doctors", data)
	}

	return c.Redirect(http.StatusSeeOther, "/doctors")
}

func draftFromForm(c echo.Context) Draft {
	return Draft{
		Name:           c.FormValue("name"),
		Specialization: c.FormValue("specialization"),
		Email:          c.FormValue("email"),
		Phone:          c.FormValue("phone"),
		LicenseNumber:  c.FormValue("license_number"),
		Bio:            c.FormValue("bio"),
	}
}
