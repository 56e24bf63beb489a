// Package page implements the pages of the exchange frontend independent of
// HTTP. A page is mounted with a Session and a Gateway, guards the session,
// loads its data from the API and then exposes view state for rendering.
package page

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hongminglow/bookx-web/internal/auth"
	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/models/dto"
	"github.com/hongminglow/bookx-web/internal/session"
)

var (
	// ErrUnauthenticated means the page must redirect to the login route.
	ErrUnauthenticated = errors.New("page: unauthenticated")
	// ErrUnmounted means results arrived after the page was torn down and
	// were dropped.
	ErrUnmounted = errors.New("page: unmounted")
)

// Gateway is the part of the exchange API the pages use.
type Gateway interface {
	Profile(ctx context.Context, token string) (dto.ProfileResponse, error)
	ExchangeRequests(ctx context.Context, token string) ([]models.Notification, error)
	Transactions(ctx context.Context, token string) ([]models.Transaction, error)
	CancelTransaction(ctx context.Context, token string, id int64) (models.Transaction, error)
}

// Deps are injected into every page on mount.
type Deps struct {
	Session  session.Session
	Gateway  Gateway
	PageSize int
	Now      func() time.Time
}

// Header is the state shared by every page header.
type Header struct {
	Username          string
	NotificationCount int
}

// Shell carries what all pages have in common: the session, the lifetime
// and the loading flag.
type Shell struct {
	deps   Deps
	ctx    context.Context
	cancel context.CancelFunc
	token  string
	claims auth.Claims

	Loading bool
	Header  Header
}

func newShell(parent context.Context, deps Deps) *Shell {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	ctx, cancel := context.WithCancel(parent)
	return &Shell{deps: deps, ctx: ctx, cancel: cancel, Loading: true}
}

// Unmount ends the page lifetime. Anything still in flight is canceled and
// its results are ignored.
func (s *Shell) Unmount() { s.cancel() }

// Alive reports whether the page is still mounted.
func (s *Shell) Alive() bool { return s.ctx.Err() == nil }

// guard reads the session token. A missing or expired token ends the mount
// before any request is made.
func (s *Shell) guard() error {
	token, ok := s.deps.Session.Token()
	if !ok {
		log.Printf("no access token found; redirecting to login")
		return ErrUnauthenticated
	}
	claims, _ := auth.Inspect(token)
	if claims.Expired(s.deps.Now()) {
		log.Printf("access token expired; redirecting to login")
		s.signOut()
		return ErrUnauthenticated
	}
	s.token, s.claims = token, claims
	return nil
}

func (s *Shell) signOut() {
	if err := s.deps.Session.Clear(); err != nil {
		log.Printf("clear session: %v", err)
	}
}

// fail ends a mount that did not complete.
func (s *Shell) fail(err error) error {
	s.Loading = false
	s.Unmount()
	return err
}

func (s *Shell) applyHeader(res loaded) {
	s.Header.Username = s.claims.Username
	if res.profile != nil && res.profile.User.Username != "" {
		s.Header.Username = res.profile.User.Username
	}
	s.Header.NotificationCount = len(res.notifications)
}
