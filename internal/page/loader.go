package page

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/models/dto"
)

// plan selects which API lists a page needs.
type plan struct {
	profile       bool
	notifications bool
	transactions  bool
}

// loaded holds fetch results. A nil field means the fetch was not planned or
// failed.
type loaded struct {
	profile       *dto.ProfileResponse
	notifications []models.Notification
	transactions  []models.Transaction
}

// load runs the planned fetches concurrently. A 401 from any of them clears
// the session and discards every result; other failures are logged and leave
// that part empty.
func (s *Shell) load(p plan) (loaded, error) {
	s.Loading = true
	defer func() { s.Loading = false }()

	var out loaded
	g, ctx := errgroup.WithContext(s.ctx)
	gw := s.deps.Gateway

	if p.profile {
		g.Go(func() error {
			profile, err := gw.Profile(ctx, s.token)
			if err != nil {
				return s.swallow("profile", err)
			}
			out.profile = &profile
			return nil
		})
	}
	if p.notifications {
		g.Go(func() error {
			items, err := gw.ExchangeRequests(ctx, s.token)
			if err != nil {
				return s.swallow("exchange requests", err)
			}
			out.notifications = items
			return nil
		})
	}
	if p.transactions {
		g.Go(func() error {
			items, err := gw.Transactions(ctx, s.token)
			if err != nil {
				return s.swallow("transactions", err)
			}
			out.transactions = items
			return nil
		})
	}

	err := g.Wait()
	if !s.Alive() {
		return loaded{}, ErrUnmounted
	}
	if backend.IsUnauthorized(err) {
		log.Printf("unauthorized access; clearing token and redirecting to login")
		s.signOut()
		return loaded{}, ErrUnauthenticated
	}
	return out, nil
}

// swallow keeps a failed fetch from failing the whole load unless it is a 401.
func (s *Shell) swallow(what string, err error) error {
	if backend.IsUnauthorized(err) {
		return err
	}
	if !errors.Is(err, context.Canceled) {
		log.Printf("fetch %s: %v", what, err)
	}
	return nil
}
