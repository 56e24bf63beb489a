package respond

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, "ok", map[string]string{"a": "b"})

	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHTMLRenderFailureIs500(t *testing.T) {
	rec := httptest.NewRecorder()

	HTML(rec, http.StatusOK, func(*bytes.Buffer) error { return errors.New("bad template") })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTMLWritesBody(t *testing.T) {
	rec := httptest.NewRecorder()

	HTML(rec, http.StatusOK, func(b *bytes.Buffer) error {
		b.WriteString("<p>hi</p>")
		return nil
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hi</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	Redirect(rec, httptest.NewRequest(http.MethodGet, "/profile", nil), "/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	Redirect(rec, req, "/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}
