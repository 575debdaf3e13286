package patients

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

// Handler serves the patients panel page.
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
	e.GET("/patients", h.ListPage)
	e.GET("/patients/new", h.NewPage)
	e.GET("/patients/:id/edit", h.EditPage)
	e.POST("/patients", h.Create)
	e.POST("/patients/:id", h.Update)
	e.GET("/patients/:id/delete", h.ConfirmDelete)
	e.POST("/patients/:id/delete", h.Delete)
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
	Items     []*Patient
	Form      *formData
	Paging    view.Paging
}

func (h *Handler) buildPage(c echo.Context, form *formData) (pageData, *Store) {
	store := NewStore(h.client)
	p := listing.FromQuery(c.QueryParams(), h.limit)
	if err := store.Refresh(c.Request().Context(), p); err != nil {
		h.logger.Error().Err(err).Msg("patient list fetch failed")
	}
	items, state, loadErr := store.Snapshot()

	query := c.QueryParam("q")
	return pageData{
		Title:     "Patients",
		Active:    "patients",
		Nav:       view.NavItems(),
		State:     state.String(),
		LoadError: loadErr,
		Query:     query,
		Items:     Filter(items, query),
		Form:      form,
		Paging:    view.NewPaging("/patients", p, len(items), c.QueryParams()),
	}, store
}

func (h *Handler) ListPage(c echo.Context) error {
	data, _ := h.buildPage(c, nil)
	return c.Render(http.StatusOK, "patients", data)
}

func (h *Handler) NewPage(c echo.Context) error {
	form := &formData{Mode: panel.FormCreate}
	data, _ := h.buildPage(c, form)
	return c.Render(http.StatusOK, "patients", data)
}

func (h *Handler) EditPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	data, store := h.buildPage(c, nil)

	pat, ok := store.FindByID(id)
	if !ok {
		pat, err = h.client.Get(c.Request().Context(), id)
		if err != nil {
			data.Banner = rest.Message(err)
			return c.Render(http.StatusOK, "patients", data)
		}
	}

	data.Form = &formData{Mode: panel.FormEdit, EditID: id, Draft: DraftOf(pat)}
	return c.Render(http.StatusOK, "patients", data)
}

func (h *Handler) Create(c echo.Context) error {
	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "patients", data)
	}

	if _, err := h.client.Create(c.Request().Context(), draft); err != nil {
		h.logger.Error().Err(err).Msg("patient create failed")
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "patients", data)
	}

	return c.Redirect(http.StatusSeeOther, "/patients")
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
		return c.Render(http.StatusOK, "patients", data)
	}

	if _, err := h.client.Update(c.Request().Context(), id, draft); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("patient update failed")
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form)
		return c.Render(http.StatusOK, "patients", data)
	}

	return c.Redirect(http.StatusSeeOther, "/patients")
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	pat, err := h.client.Get(c.Request().Context(), id)
	if err != nil {
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "patients", data)
	}

	return c.Render(http.StatusOK, "confirm_delete", view.ConfirmData{
		Title:      "Delete patient",
		Active:     "patients",
		Nav:        view.NavItems(),
		Prompt:     "Delete patient " + pat.FullName() + "?",
		Detail:     pat.Email,
		ActionPath: "/patients/" + strconv.Itoa(id) + "/delete",
		CancelPath: "/patients",
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.client.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("patient delete failed")
		data, _ := h.buildPage(c, nil)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "patients", data)
	}

	return c.Redirect(http.StatusSeeOther, "/patients")
}

func draftFromForm(c echo.Context) Draft {
	return Draft{
		FirstName:      c.FormValue("first_name"),
		LastName:       c.FormValue("last_name"),
		Email:          c.FormValue("email"),
		Phone:          c.FormValue("phone"),
		DateOfBirth:    c.FormValue("date_of_birth"),
		Address:        c.FormValue("address"),
		MedicalHistory: c.FormValue("medical_history"),
		Allergies:      c.FormValue("allergies"),
	}
}
