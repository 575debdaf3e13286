package doctors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/internal/platform/view"
)

// fakeAPI is a minimal in-memory /doctors backend for handler tests.
type fakeAPI struct {
	srv       *httptest.Server
	doctors   []*Doctor
	nextID    int
	creates   int32
	updates   int32
	lastQuery url.Values
}

func newFakeAPI(t *testing.T, seed ...*Doctor) *fakeAPI {
	t.Helper()
	f := &fakeAPI{doctors: seed, nextID: 100}
	mux := http.NewServeMux()
	mux.HandleFunc("/doctors", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.lastQuery = r.URL.Query()
			json.NewEncoder(w).Encode(f.doctors)
		case http.MethodPost:
			atomic.AddInt32(&f.creates, 1)
			var d Doctor
			json.NewDecoder(r.Body).Decode(&d)
			f.nextID++
			d.ID = f.nextID
			d.IsActive = true
			f.doctors = append(f.doctors, &d)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(d)
		}
	})
	mux.HandleFunc("/doctors/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r.URL.Path, "/doctors/")
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		idx := -1
		for i, d := range f.doctors {
			if d.ID == id {
				idx = i
			}
		}
		if idx < 0 {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Doctor not found"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.doctors[idx])
		case http.MethodPut:
			atomic.AddInt32(&f.updates, 1)
			var d Doctor
			json.NewDecoder(r.Body).Decode(&d)
			d.ID = id
			f.doctors[idx] = &d
			json.NewEncoder(w).Encode(d)
		case http.MethodDelete:
			f.doctors = append(f.doctors[:idx], f.doctors[idx+1:]...)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func pathID(path, prefix string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimPrefix(path, prefix))
	return id, err == nil
}

func newTestHandler(t *testing.T, f *fakeAPI) (*Handler, *echo.Echo) {
	t.Helper()
	api := rest.New(f.srv.URL, 2*time.Second, zerolog.Nop())
	h := NewHandler(NewClient(api), 0, zerolog.Nop())

	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	return h, e
}

func TestListPage_RendersCards(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 1, Name: "Dr. Adams", Specialization: "Cardiology", Email: "adams@clinic.test", IsActive: true},
		&Doctor{ID: 2, Name: "Dr. Brown", Specialization: "Dermatology", Email: "brown@clinic.test"},
	)
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dr. Adams") || !strings.Contains(body, "Dr. Brown") {
		t.Error("expected both doctors rendered")
	}
	if !strings.Contains(body, "Cardiology") {
		t.Error("expected specialization rendered")
	}
}

func TestListPage_SearchFilters(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 1, Name: "Dr. Adams", Specialization: "Cardiology", Email: "adams@clinic.test"},
		&Doctor{ID: 2, Name: "Dr. Brown", Specialization: "Dermatology", Email: "brown@clinic.test"},
	)
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodGet, "/doctors?q=cardio", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dr. Adams") {
		t.Error("expected matching doctor rendered")
	}
	if strings.Contains(body, "Dr. Brown") {
		t.Error("expected non-matching doctor filtered out")
	}
}

func TestListPage_ConfiguredLimitReachesAPI(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 1, Name: "Dr. Adams", Specialization: "Cardiology", Email: "adams@clinic.test"},
	)
	api := rest.New(f.srv.URL, 2*time.Second, zerolog.Nop())
	h := NewHandler(NewClient(api), 7, zerolog.Nop())

	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.lastQuery.Get("limit"); got != "7" {
		t.Errorf("configured page size should reach the API, got limit=%q", got)
	}

	// An explicit limit in the request still wins over the configured one.
	req = httptest.NewRequest(http.MethodGet, "/doctors?limit=3", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.lastQuery.Get("limit"); got != "3" {
		t.Errorf("explicit limit should win, got limit=%q", got)
	}
}

func TestListPage_PagingLinksKeepSearch(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 1, Name: "Dr. Adams", Specialization: "Cardiology", Email: "adams@clinic.test"},
		&Doctor{ID: 2, Name: "Dr. Brown", Specialization: "Dermatology", Email: "brown@clinic.test"},
	)
	h, e := newTestHandler(t, f)

	// Two items returned against limit=2 means a next page is offered.
	req := httptest.NewRequest(http.MethodGet, "/doctors?q=dr&limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "skip=2") {
		t.Fatal("expected a next page link")
	}
	if !strings.Contains(body, "q=dr") {
		t.Error("paging link should carry the active search filter")
	}
}

func TestListPage_APIDown_ShowsErrorState(t *testing.T) {
	f := newFakeAPI(t)
	f.srv.Close()
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPage(c); err != nil {
		t.Fatalf("page should render the error state, got %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Failed to load data") {
		t.Error("expected load error banner")
	}
}

func TestCreate_RefetchShowsNewDoctor(t *testing.T) {
	f := newFakeAPI(t)
	h, e := newTestHandler(t, f)

	form := url.Values{}
	form.Set("name", "Dr. New")
	form.Set("specialization", "Oncology")
	form.Set("email", "new@clinic.test")
	form.Set("phone", "555-0100")
	form.Set("license_number", "LIC-1")

	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}

	// The follow-up list page must contain the created doctor.
	req = httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Dr. New") {
		t.Error("expected created doctor in refreshed list")
	}
}

func TestCreate_InvalidDraft_NoAPICall(t *testing.T) {
	f := newFakeAPI(t)
	h, e := newTestHandler(t, f)

	form := url.Values{}
	form.Set("name", "Dr. Incomplete")
	// missing email et al.

	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&f.creates) != 0 {
		t.Error("no create API call should be issued for an invalid draft")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "is required") {
		t.Error("expected validation message in re-rendered form")
	}
	if !strings.Contains(body, "Dr. Incomplete") {
		t.Error("expected draft preserved in re-rendered form")
	}
}

func TestCreate_BackendRejects_SurfacesDetail(t *testing.T) {
	f := newFakeAPI(t)
	// Swap in a backend that rejects creates with a detail message.
	f.srv.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "license already registered"})
			return
		}
		json.NewEncoder(w).Encode([]*Doctor{})
	})
	h, e := newTestHandler(t, f)

	form := url.Values{}
	form.Set("name", "Dr. Dup")
	form.Set("specialization", "Cardiology")
	form.Set("email", "dup@clinic.test")
	form.Set("phone", "555-0100")
	form.Set("license_number", "LIC-1")

	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "license already registered") {
		t.Error("expected backend detail surfaced in banner")
	}
}

func TestEditPage_SeedsDraft(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 7, Name: "Dr. Edit", Specialization: "Neurology", Email: "edit@clinic.test", Phone: "555-0101", LicenseNumber: "LIC-7"},
	)
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodGet, "/doctors/7/edit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.EditPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{`value="Dr. Edit"`, `value="Neurology"`, `value="edit@clinic.test"`, `value="LIC-7"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected draft field %s in form", want)
		}
	}
	if !strings.Contains(body, "/doctors/7") {
		t.Error("expected form to post to the edit target")
	}
}

func TestDelete_ThenListOmitsDoctor(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 3, Name: "Dr. Gone", Specialization: "Cardiology", Email: "gone@clinic.test"},
	)
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodPost, "/doctors/3/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := h.ListPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "Dr. Gone") {
		t.Error("deleted doctor must not appear in refreshed list")
	}
}

func TestConfirmDelete_RendersPrompt(t *testing.T) {
	f := newFakeAPI(t,
		&Doctor{ID: 4, Name: "Dr. Confirm", Specialization: "Cardiology", Email: "c@clinic.test"},
	)
	h, e := newTestHandler(t, f)

	req := httptest.NewRequest(http.MethodGet, "/doctors/4/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.ConfirmDelete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Delete doctor Dr. Confirm?") {
		t.Error("expected confirmation prompt")
	}
	if !strings.Contains(body, "/doctors/4/delete") {
		t.Error("expected delete action path")
	}
}
