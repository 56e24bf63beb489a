package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookx-web/internal/http/respond"
	"github.com/hongminglow/bookx-web/internal/http/views"
	"github.com/hongminglow/bookx-web/internal/listing"
	"github.com/hongminglow/bookx-web/internal/page"
	"github.com/hongminglow/bookx-web/internal/session"
)

// PageHandler serves the signed-in pages.
type PageHandler struct {
	sessions session.Store
	gateway  page.Gateway
	views    *views.Renderer
	pageSize int
}

// NewPageHandler constructs the handler.
func NewPageHandler(sessions session.Store, gateway page.Gateway, renderer *views.Renderer, pageSize int) *PageHandler {
	return &PageHandler{sessions: sessions, gateway: gateway, views: renderer, pageSize: pageSize}
}

// Register attaches page routes to the router.
func (h *PageHandler) Register(r *mux.Router) {
	r.HandleFunc(RouteRoot, h.handleRoot).Methods(http.MethodGet)
	r.HandleFunc(RouteProfile, h.handleProfile).Methods(http.MethodGet)
	r.HandleFunc(RouteCancel, h.handleCancel).Methods(http.MethodPost)
	r.HandleFunc(RouteMyBooks, h.handleMyBooks).Methods(http.MethodGet)
	r.HandleFunc(RouteManageBooks, h.handleManageBooks).Methods(http.MethodGet)
	r.HandleFunc(RouteNotifications, h.handleNotifications).Methods(http.MethodGet)
}

func (h *PageHandler) deps(w http.ResponseWriter, r *http.Request) page.Deps {
	return page.Deps{
		Session:  h.sessions.Bind(w, r),
		Gateway:  h.gateway,
		PageSize: h.pageSize,
	}
}

func (h *PageHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteProfile, http.StatusFound)
}

func (h *PageHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := page.MountProfile(r.Context(), h.deps(w, r))
	if err != nil {
		h.mountFailed(w, r, err)
		return
	}
	defer p.Unmount()
	h.render(w, views.Profile, views.ProfileData{
		Layout:       layout("My Profile", RouteProfile, p.Header),
		User:         p.User,
		Transactions: p.Transactions,
	})
}

func (h *PageHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := page.MountProfile(r.Context(), h.deps(w, r))
	if err != nil {
		h.mountFailed(w, r, err)
		return
	}
	defer p.Unmount()

	if err := p.Cancel(id); err != nil {
		switch {
		case errors.Is(err, page.ErrUnauthenticated):
			respond.Redirect(w, r, RouteLogin)
			return
		case errors.Is(err, page.ErrUnmounted):
			return
		}
	}
	if !respond.IsHTMX(r) {
		respond.Redirect(w, r, RouteProfile)
		return
	}
	tx, ok := p.Transaction(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	respond.HTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.views.Fragment(buf, views.Profile, "transaction", tx)
	})
}

func (h *PageHandler) handleMyBooks(w http.ResponseWriter, r *http.Request) {
	p, err := page.MountMyBooks(r.Context(), h.deps(w, r))
	if err != nil {
		h.mountFailed(w, r, err)
		return
	}
	defer p.Unmount()
	applyListQuery(r, p.Books)
	h.render(w, views.MyBooks, views.BooksData{
		Layout: layout("My Books", RouteMyBooks, p.Header),
		Query:  p.Books.Query(),
		Books:  p.Books.Pager().Visible(),
		Pager:  views.NewPager(RouteMyBooks, p.Books.Query(), p.Books.Pager()),
	})
}

func (h *PageHandler) handleManageBooks(w http.ResponseWriter, r *http.Request) {
	p, err := page.MountManageBooks(r.Context(), h.deps(w, r))
	if err != nil {
		h.mountFailed(w, r, err)
		return
	}
	defer p.Unmount()
	applyListQuery(r, p.Transactions)
	h.render(w, views.ManageBooks, views.TransactionsData{
		Layout:       layout("Manage Books", RouteManageBooks, p.Header),
		Query:        p.Transactions.Query(),
		Transactions: p.Transactions.Pager().Visible(),
		Pager:        views.NewPager(RouteManageBooks, p.Transactions.Query(), p.Transactions.Pager()),
	})
}

func (h *PageHandler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	p, err := page.MountNotifications(r.Context(), h.deps(w, r))
	if err != nil {
		h.mountFailed(w, r, err)
		return
	}
	defer p.Unmount()
	h.render(w, views.Notifications, views.NotificationsData{
		Layout: layout("Notifications", RouteNotifications, p.Header),
		Count:  len(p.Items),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	respond.HTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.views.Page(buf, name, data)
	})
}

func (h *PageHandler) mountFailed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, page.ErrUnauthenticated):
		respond.Redirect(w, r, RouteLogin)
	case errors.Is(err, page.ErrUnmounted):
		// The client is gone; there is nobody to answer.
	default:
		log.Printf("mount %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// applyListQuery replays the search (q) and page navigation (page) carried
// by the request onto a list view. A search always starts from page 1.
func applyListQuery[T any](r *http.Request, v *listing.View[T]) {
	q := r.URL.Query()
	if q.Has("q") {
		v.Search(q.Get("q"))
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		v.Pager().Goto(n)
	}
}

func layout(title, active string, header page.Header) views.Layout {
	return views.Layout{Title: title, Active: active, Header: header, SignedIn: true}
}
