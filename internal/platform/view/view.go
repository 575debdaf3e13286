// Package view renders the panel's HTML pages from templates embedded in the
// binary. It implements echo.Renderer so handlers can call c.Render with a
// template name and a page data struct.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer renders embedded templates for echo.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates. Parse failures are programming
// errors and surface at startup.
func NewRenderer() (*Renderer, error) {
	t := template.New("").Funcs(template.FuncMap{
		"money":    Money,
		"datetime": DateTime,
		"minutes":  Minutes,
	})
	t, err := t.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// StaticHandler serves the embedded stylesheet and other assets under /static.
func StaticHandler() echo.HandlerFunc {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The static directory is embedded at compile time.
		panic(err)
	}
	return echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}

// Money formats a price as a 2-decimal dollar amount.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// DateTime formats a timestamp for card display. The zero time renders empty.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 15:04")
}

// Minutes renders a duration in minutes, e.g. "30 min".
func Minutes(m int) string {
	return fmt.Sprintf("%d min", m)
}

// NavItems are the panel's top-level pages, in display order.
func NavItems() []NavItem {
	return []NavItem{
		{Path: "/doctors", Label: "Doctors"},
		{Path: "/patients", Label: "Patients"},
		{Path: "/appointments", Label: "Appointments"},
		{Path: "/services", Label: "Services"},
	}
}

// ConfirmData is the page data for the delete confirmation page shared by
// all resources.
type ConfirmData struct {
	Title      string
	Active     string
	Nav        []NavItem
	Prompt     string
	Detail     string
	ActionPath string
	CancelPath string
}

// Paging carries the previous/next page affordances for a list page. The API
// reports no total count, so a full page is treated as "possibly more".
type Paging struct {
	BasePath string
	HasPrev  bool
	HasMore  bool
	PrevURL  string
	NextURL  string
}

// NewPaging builds the paging affordances for a list page given the window
// requested, the number of items the API returned, and the page's current
// query parameters. Filter parameters (q, status, availability) survive in
// the prev/next links so paging does not reset the user's search.
func NewPaging(basePath string, p listing.Params, returned int, query url.Values) Paging {
	pageURL := func(skip int) string {
		q := url.Values{}
		for k, vs := range query {
			if len(vs) > 0 && vs[0] != "" {
				q.Set(k, vs[0])
			}
		}
		q.Set("skip", strconv.Itoa(skip))
		q.Set("limit", strconv.Itoa(p.Limit))
		return basePath + "?" + q.Encode()
	}

	return Paging{
		BasePath: basePath,
		HasPrev:  p.HasPrev(),
		HasMore:  p.HasMore(returned),
		PrevURL:  pageURL(p.PrevSkip()),
		NextURL:  pageURL(p.NextSkip()),
	}
}

// NavItem is one entry in the panel navigation bar.
type NavItem struct {
	Path  string
	Label string
}

// IsActive reports whether this nav item matches the active page key.
func (n NavItem) IsActive(active string) bool {
	return strings.TrimPrefix(n.Path, "/") == active
}
