package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/hongminglow/bookx-web/internal/storage"
)

// ServerStore keeps tokens server side; the cookie only carries a random
// session id.
type ServerStore struct {
	opts CookieOptions
	repo storage.TokenRepository
	now  func() time.Time
}

// NewServerStore stores tokens in repo for opts.TTL.
func NewServerStore(repo storage.TokenRepository, opts CookieOptions) *ServerStore {
	return &ServerStore{opts: opts, repo: repo, now: time.Now}
}

func (s *ServerStore) Bind(w http.ResponseWriter, r *http.Request) Session {
	return &serverSession{store: s, w: w, r: r}
}

// HashID returns the repository key for a session id.
func HashID(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return fmt.Sprintf("%x", sum[:])
}

type serverSession struct {
	store *ServerStore
	w     http.ResponseWriter
	r     *http.Request

	overridden bool
	token      string
}

func (s *serverSession) ctx() context.Context {
	if s.r == nil {
		return context.Background()
	}
	return s.r.Context()
}

func (s *serverSession) Token() (string, bool) {
	if s.overridden {
		return s.token, s.token != ""
	}
	id, ok := s.store.opts.read(s.r)
	if !ok {
		return "", false
	}
	token, err := s.store.repo.Get(s.ctx(), HashID(id), s.store.now())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session lookup: %v", err)
		}
		return "", false
	}
	return token, token != ""
}

func (s *serverSession) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear()
	}
	if old, ok := s.store.opts.read(s.r); ok {
		if err := s.store.repo.Delete(s.ctx(), HashID(old)); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("drop replaced session: %v", err)
		}
	}
	id := uuid.NewString()
	expires := s.store.now().Add(s.store.opts.TTL)
	if err := s.store.repo.Put(s.ctx(), HashID(id), token, expires); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	s.store.opts.write(s.w, id)
	s.overridden, s.token = true, token
	return nil
}

func (s *serverSession) Clear() error {
	var err error
	if id, ok := s.store.opts.read(s.r); ok {
		if derr := s.store.repo.Delete(s.ctx(), HashID(id)); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
			err = fmt.Errorf("delete session: %w", derr)
		}
	}
	s.store.opts.clear(s.w)
	s.overridden, s.token = true, ""
	return err
}
