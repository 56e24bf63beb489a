package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errMalformedCookie = errors.New("session: malformed cookie")

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (o CookieOptions) write(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(o.TTL / time.Second),
	})
}

func (o CookieOptions) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (o CookieOptions) read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(o.Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// CookieStore keeps the token itself in the cookie, sealed with a key
// derived from a server secret.
type CookieStore struct {
	opts CookieOptions
	key  [32]byte
}

// NewCookieStore derives the sealing key from secret.
func NewCookieStore(secret string, opts CookieOptions) *CookieStore {
	return &CookieStore{opts: opts, key: blake2b.Sum256([]byte(secret))}
}

func (s *CookieStore) Bind(w http.ResponseWriter, r *http.Request) Session {
	return &cookieSession{store: s, w: w, r: r}
}

func (s *CookieStore) seal(token string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *CookieStore) open(value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", errMalformedCookie
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errMalformedCookie
	}
	return string(plain), nil
}

type cookieSession struct {
	store *CookieStore
	w     http.ResponseWriter
	r     *http.Request

	// Set once the session was written or cleared during this request.
	overridden bool
	token      string
}

func (c *cookieSession) Token() (string, bool) {
	if c.overridden {
		return c.token, c.token != ""
	}
	value, ok := c.store.opts.read(c.r)
	if !ok {
		return "", false
	}
	token, err := c.store.open(value)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (c *cookieSession) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return c.Clear()
	}
	sealed, err := c.store.seal(token)
	if err != nil {
		return err
	}
	c.store.opts.write(c.w, sealed)
	c.overridden, c.token = true, token
	return nil
}

func (c *cookieSession) Clear() error {
	c.store.opts.clear(c.w)
	c.overridden, c.token = true, ""
	return nil
}
