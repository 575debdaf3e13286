package appointments

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctors"
	"github.com/clinicdesk/clinicdesk/internal/domain/patients"
	"github.com/clinicdesk/clinicdesk/internal/platform/panel"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/internal/platform/view"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

// Handler serves the appointments panel page. Besides its own list it loads
// the doctor and patient reference lists so cards and the booking form can
// resolve the bare foreign keys the API returns.
type Handler struct {
	client   *Client
	doctors  *doctors.Client
	patients *patients.Client
	limit    int
	logger   zerolog.Logger
}

func NewHandler(client *Client, docs *doctors.Client, pats *patients.Client, limit int, logger zerolog.Logger) *Handler {
	return &Handler{
		client:   client,
		doctors:  docs,
		patients: pats,
		limit:    limit,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/appointments", h.ListPage)
	e.GET("/appointments/new", h.NewPage)
	e.GET("/appointments/:id/edit", h.EditPage)
	e.POST("/appointments", h.Create)
	e.POST("/appointments/:id", h.Update)
	e.GET("/appointments/:id/delete", h.ConfirmDelete)
	e.POST("/appointments/:id/delete", h.Delete)
	e.GET("/appointments/doctor/:id", h.DoctorPage)
	e.GET("/appointments/patient/:id", h.PatientPage)
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
	StatusFilter string
	Cards        []Card
	Doctors      []*doctors.Doctor
	Patients     []*patients.Patient
	Form         *formData
	Paging       view.Paging
}

type listFunc func(ctx context.Context, p listing.Params) ([]*Appointment, error)

// buildPage fetches the appointment page plus both reference lists in
// parallel, each into a store owned by this request. The page needs all
// three to render its cards and form, so any failed fetch puts the whole
// page in the error state.
func (h *Handler) buildPage(c echo.Context, form *formData, basePath string, list listFunc) (pageData, *Store) {
	store := NewStore()
	docStore := doctors.NewStore(h.doctors)
	patStore := patients.NewStore(h.patients)

	p := listing.FromQuery(c.QueryParams(), h.limit)
	status := c.QueryParam("status")
	if status == "" {
		status = "all"
	}

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		return store.Refresh(ctx, func(ctx context.Context) ([]*Appointment, error) {
			return list(ctx, p)
		})
	})
	g.Go(func() error { return docStore.Refresh(ctx, listing.WithLimit(h.limit)) })
	g.Go(func() error { return patStore.Refresh(ctx, listing.WithLimit(h.limit)) })
	err := g.Wait()

	items, state, loadErr := store.Snapshot()
	docs, _, _ := docStore.Snapshot()
	pats, _, _ := patStore.Snapshot()

	if err != nil {
		h.logger.Error().Err(err).Msg("appointment page fetch failed")
		state = panel.StateError
		loadErr = rest.Message(err)
		items, docs, pats = nil, nil, nil
	}

	return pageData{
		Title:        "Appointments",
		Active:       "appointments",
		Nav:          view.NavItems(),
		State:        state.String(),
		LoadError:    loadErr,
		StatusFilter: status,
		Cards:        Resolve(ByStatus(items, status), docs, pats),
		Doctors:      docs,
		Patients:     pats,
		Form:         form,
		Paging:       view.NewPaging(basePath, p, len(items), c.QueryParams()),
	}, store
}

func (h *Handler) ListPage(c echo.Context) error {
	data, _ := h.buildPage(c, nil, "/appointments", h.client.List)
	return c.Render(http.StatusOK, "appointments", data)
}

// DoctorPage lists the appointments booked with one doctor.
func (h *Handler) DoctorPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	list := func(ctx context.Context, p listing.Params) ([]*Appointment, error) {
		return h.client.ListByDoctor(ctx, id, p)
	}
	data, _ := h.buildPage(c, nil, fmt.Sprintf("/appointments/doctor/%d", id), list)
	for _, d := range data.Doctors {
		if d.ID == id {
			data.Title = "Appointments with " + d.Name
			break
		}
	}
	return c.Render(http.StatusOK, "appointments", data)
}

// PatientPage lists the appointments booked for one patient.
func (h *Handler) PatientPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	list := func(ctx context.Context, p listing.Params) ([]*Appointment, error) {
		return h.client.ListByPatient(ctx, id, p)
	}
	data, _ := h.buildPage(c, nil, fmt.Sprintf("/appointments/patient/%d", id), list)
	for _, pt := range data.Patients {
		if pt.ID == id {
			data.Title = "Appointments for " + pt.FullName()
			break
		}
	}
	return c.Render(http.StatusOK, "appointments", data)
}

func (h *Handler) NewPage(c echo.Context) error {
	form := &formData{Mode: panel.FormCreate, Draft: NewDraft()}
	data, _ := h.buildPage(c, form, "/appointments", h.client.List)
	return c.Render(http.StatusOK, "appointments", data)
}

func (h *Handler) EditPage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	data, store := h.buildPage(c, nil, "/appointments", h.client.List)

	appt, ok := store.FindByID(id)
	if !ok {
		appt, err = h.client.Get(c.Request().Context(), id)
		if err != nil {
			data.Banner = rest.Message(err)
			return c.Render(http.StatusOK, "appointments", data)
		}
	}

	data.Form = &formData{Mode: panel.FormEdit, EditID: id, Draft: DraftOf(appt)}
	return c.Render(http.StatusOK, "appointments", data)
}

func (h *Handler) Create(c echo.Context) error {
	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form, "/appointments", h.client.List)
		return c.Render(http.StatusOK, "appointments", data)
	}

	if _, err := h.client.Create(c.Request().Context(), draft); err != nil {
		h.logger.Error().Err(err).Msg("appointment create failed")
		form := &formData{Mode: panel.FormCreate, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form, "/appointments", h.client.List)
		return c.Render(http.StatusOK, "appointments", data)
	}

	return c.Redirect(http.StatusSeeOther, "/appointments")
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	draft := draftFromForm(c)
	if err := draft.Validate(); err != nil {
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: err.Error()}
		data, _ := h.buildPage(c, form, "/appointments", h.client.List)
		return c.Render(http.StatusOK, "appointments", data)
	}

	if _, err := h.client.Update(c.Request().Context(), id, draft); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("appointment update failed")
		form := &formData{Mode: panel.FormEdit, EditID: id, Draft: draft, Error: rest.Message(err)}
		data, _ := h.buildPage(c, form, "/appointments", h.client.List)
		return c.Render(http.StatusOK, "appointments", data)
	}

	return c.Redirect(http.StatusSeeOther, "/appointments")
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	appt, err := h.client.Get(c.Request().Context(), id)
	if err != nil {
		data, _ := h.buildPage(c, nil, "/appointments", h.client.List)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "appointments", data)
	}

	return c.Render(http.StatusOK, "confirm_delete", view.ConfirmData{
		Title:      "Delete appointment",
		Active:     "appointments",
		Nav:        view.NavItems(),
		Prompt:     fmt.Sprintf("Delete appointment #%d?", id),
		Detail:     appt.AppointmentDate.Format("2006-01-02 15:04") + ", " + appt.Status,
		ActionPath: fmt.Sprintf("/appointments/%d/delete", id),
		CancelPath: "/appointments",
	})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.client.Delete(c.Request().Context(), id); err != nil {
		h.logger.Error().Err(err).Int("id", id).Msg("appointment delete failed")
		data, _ := h.buildPage(c, nil, "/appointments", h.client.List)
		data.Banner = rest.Message(err)
		return c.Render(http.StatusOK, "appointments", data)
	}

	return c.Redirect(http.StatusSeeOther, "/appointments")
}

func draftFromForm(c echo.Context) Draft {
	return Draft{
		PatientID:       formInt(c, "patient_id"),
		DoctorID:        formInt(c, "doctor_id"),
		AppointmentDate: c.FormValue("appointment_date"),
		DurationMinutes: formInt(c, "duration_minutes"),
		Status:          c.FormValue("status"),
		Notes:           c.FormValue("notes"),
	}
}

func formInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return 0
	}
	return n
}
