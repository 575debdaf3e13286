package services

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

// Handler serves the services panel page.
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
	e.GET("/services", h.ListPage)
	e.GET("/services/new", h.NewPage)
	e.GET("/services/:id/edit", h.EditPage)
	e.POST("/services", h.Create)
	e.POST("/services/:id", h.Update)
	e.GET("/services/:id/delete", h.ConfirmDelete)
	e.POST("/services/:id/delete", h.Delete)
}

type formData struct {
	Mode   panel.FormMode
	EditID int
	Draft  Draft
	Error  string
}

type pageData struct {
	Title        string
	Active       string
	Nav          []view.NavItem
	State        string
	LoadError    string
	Banner       string
	Query        string
	Availability string
	Items        []*Service
	Form         *formData
	Paging       view.Paging
}

func (h *Handler) buildPage(c echo.Context, form *formData) (pageData, *Store) {
	store := NewStore(h.client)
	p := listing.FromQuery(c.QueryParams(), h.limit)
	if err := store.Refresh(c.Request().Context(), p); err != nil {
		h.logger.Error().Err(err).Msg("service list fetch failed")
	}
	items, state, loadErr := store.Snapshot()

	query := c.QueryParam("q")
	availability := c.QueryParam("availability")
	if availability == "" {
		availability = "all"
	}
	return pageData{
		Title:        "Services",
		Active:       "services",
		Nav:          view.NavItems(),
		State:        state.String(),
		LoadError:    loadErr,
		Query:        query,
		Availability: availability,
		Items:        Filter(items, query, availability),
		Form:         form,
		Paging:       view.NewPaging("/services", p, len(items), c.QueryParams()),
	}, store
}

func (h *Handler) ListPage(c echo.Context) error {
	data, _ := h.buildPage(c, nil)
	return c.Render(http.StatusOK, "services", data)
}

func (h *Handler) NewPage(c echo.Context) error {
	form := &formData{Mode: panel.FormCreate, Draft: NewDraft()}
	data, _ := h.buildPage(c, form)
	return c.Render(http.StatusOK, "services", data)
}

func (h *Handler) EditPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	data, store := h.buildPage(c, nil)

	svc, ok := store.FindByID(id)
	if !ok {
		svc, err = h.client.Get(c.Request().Context(), id)
		if err != nil {
			data.Banner = rest.Message(err)
			return c.Render(http.StatusOK, "services", data)
		}
	}

	data.Form = &formData{Mode: panel.FormEdit, EditID: id, Draft: DraftOf(svc)}
	return c.Render(http.StatusOK, "services", data)
}

func (h *Handler) Create(c echo.Context) error {
	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "services", data)
	}

	if _, err := h.client.Create(c.Request().Context(), draft); err != nil {
		h.logger.Error().Err(err).Msg("service create failed")
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "services", data)
	}

	return c.Redirect(http.StatusSeeOther, "/services")
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
		return c.Render(http.StatusOK, "services", data)
	}

	if _, err := h.client.Update(c.Request().Context(), id, draft); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("service update failed")
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "services", data)
	}

	return c.Redirect(http.StatusSeeOther, "/services")
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	svc, err := h.client.Get(c.Request().Context(), id)
	if err != nil {
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "services", data)
	}

	return c.Render(http.StatusOK, "confirm_delete", view.ConfirmData{
		Title:      "Delete service",
		Active:     "services",
		Nav:        view.NavItems(),
		Prompt:     "Delete service " + svc.Name + "?",
		Detail:     svc.Description,
		ActionPath: "/services/" + strconv.Itoa(id) + "/delete",
		CancelPath: "/services",
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.client.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("service delete failed")
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "services", data)
	}

	return c.Redirect(http.StatusSeeOther, "/services")
}

func draftFromForm(c echo.Context) Draft {
	duration, _ := strconv.Atoi(c.FormValue("duration_minutes"))
	return Draft{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		Price:           c.FormValue("price"),
		DurationMinutes: duration,
		IsAvailable:     c.FormValue("is_available") == "true",
	}
}
