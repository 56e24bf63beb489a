// Package session holds the bearer token of the signed-in user between page
// loads. Pages only see the Session interface; the HTTP layer binds one per
// request from a Store.
package session

import (
	"net/http"
	"strings"
	"sync"
)

// Session reads, writes and clears the bearer token.
type Session interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// Store binds a Session to a request/response pair.
type Store interface {
	Bind(w http.ResponseWriter, r *http.Request) Session
}

// Memory is an in-process Session.
type Memory struct {
	mu    sync.Mutex
	token string
}

// NewMemory returns a Memory session holding token, which may be empty.
func NewMemory(token string) *Memory {
	return &Memory{token: strings.TrimSpace(token)}
}

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = strings.TrimSpace(token)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// MemoryStore hands out the same Memory session to every request.
type MemoryStore struct {
	Session *Memory
}

func (s MemoryStore) Bind(http.ResponseWriter, *http.Request) Session {
	return s.Session
}
