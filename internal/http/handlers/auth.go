package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/http/respond"
	"github.com/hongminglow/bookx-web/internal/http/views"
	"github.com/hongminglow/bookx-web/internal/models/dto"
	"github.com/hongminglow/bookx-web/internal/session"
)

// TokenIssuer exchanges credentials for a bearer token.
type TokenIssuer interface {
	ObtainToken(ctx context.Context, username, password string) (dto.TokenPair, error)
}

// AuthHandler owns the login and logout routes.
type AuthHandler struct {
	sessions session.Store
	tokens   TokenIssuer
	views    *views.Renderer
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions session.Store, tokens TokenIssuer, renderer *views.Renderer) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens, views: renderer}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc(RouteLogin, h.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc(RouteLogin, h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc(RouteLogout, h.handleLogout).Methods(http.MethodPost)
}

func (h *AuthHandler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, views.LoginData{})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, http.StatusBadRequest, views.LoginData{Error: "invalid form submission"})
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || strings.TrimSpace(password) == "" {
		h.renderLogin(w, http.StatusBadRequest, views.LoginData{Username: username, Error: "username and password are required"})
		return
	}

	pair, err := h.tokens.ObtainToken(r.Context(), username, password)
	if err != nil {
		var statusErr *backend.StatusError
		switch {
		case backend.IsUnauthorized(err), errors.As(err, &statusErr) && statusErr.Status < http.StatusInternalServerError:
			h.renderLogin(w, http.StatusUnauthorized, views.LoginData{Username: username, Error: "invalid credentials"})
		default:
			log.Printf("login failed for %s: %v", username, err)
			h.renderLogin(w, http.StatusBadGateway, views.LoginData{Username: username, Error: "sign-in is unavailable, try again later"})
		}
		return
	}
	if strings.TrimSpace(pair.Access) == "" {
		log.Printf("login for %s: api returned no access token", username)
		h.renderLogin(w, http.StatusBadGateway, views.LoginData{Username: username, Error: "sign-in is unavailable, try again later"})
		return
	}

	if err := h.sessions.Bind(w, r).SetToken(pair.Access); err != nil {
		log.Printf("store session for %s: %v", username, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	respond.Redirect(w, r, RouteProfile)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Bind(w, r).Clear(); err != nil {
		log.Printf("logout: %v", err)
	}
	respond.Redirect(w, r, RouteLogin)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, status int, data views.LoginData) {
	data.Layout = views.Layout{Title: "Sign in", Active: RouteLogin}
	respond.HTML(w, status, func(buf *bytes.Buffer) error {
		return h.views.Page(buf, views.Login, data)
	})
}
