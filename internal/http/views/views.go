// Package views renders the HTML pages of the frontend.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/hongminglow/bookx-web/internal/listing"
	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/page"
)

//go:embed templates/*.html
var files embed.FS

// Page template names.
const (
	Login         = "login.html"
	Profile       = "profile.html"
	MyBooks       = "my_books.html"
	ManageBooks   = "manage_books.html"
	Notifications = "notifications.html"
)

var funcs = template.FuncMap{
	"date": func(t models.Timestamp) string {
		switch {
		case !t.Time.IsZero():
			return t.Time.Format("Jan 2, 2006")
		case t.Raw != "":
			return t.Raw
		default:
			return "-"
		}
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
	"searchForm": func(action, query, placeholder string) searchForm {
		return searchForm{Action: action, Query: query, Placeholder: placeholder}
	},
}

type searchForm struct {
	Action      string
	Query       string
	Placeholder string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout and partials.
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{Login, Profile, MyBooks, ManageBooks, Notifications} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html", "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Page renders a full page.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	return r.Fragment(w, name, "layout", data)
}

// Fragment renders a single named block of a page.
func (r *Renderer) Fragment(w io.Writer, name, block string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, block, data)
}

// Layout is the data every page shares.
type Layout struct {
	Title    string
	Active   string
	Header   page.Header
	SignedIn bool
}

// Pager is the navigation state of a paginated list.
type Pager struct {
	Path    string
	Query   string
	Page    int
	Total   int
	Pages   []int
	HasPrev bool
	HasNext bool
}

// NewPager captures the navigation state of p for links under path.
func NewPager[T any](path, query string, p *listing.Paginator[T]) Pager {
	return Pager{
		Path:    path,
		Query:   query,
		Page:    p.Page(),
		Total:   p.TotalPages(),
		Pages:   p.Pages(),
		HasPrev: p.HasPrevious(),
		HasNext: p.HasNext(),
	}
}

// URL links to page n, keeping the search query.
func (p Pager) URL(n int) string {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	v.Set("page", strconv.Itoa(n))
	return p.Path + "?" + v.Encode()
}

// ProfileData is rendered by the profile page.
type ProfileData struct {
	Layout
	User         *models.User
	Transactions []models.Transaction
}

// BooksData is rendered by the my-books page.
type BooksData struct {
	Layout
	Query string
	Books []models.Book
	Pager Pager
}

// TransactionsData is rendered by the manage-books page.
type TransactionsData struct {
	Layout
	Query        string
	Transactions []models.Transaction
	Pager        Pager
}

// NotificationsData is rendered by the notifications page.
type NotificationsData struct {
	Layout
	Count int
}

// LoginData is rendered by the login page.
type LoginData struct {
	Layout
	Username string
	Error    string
}
