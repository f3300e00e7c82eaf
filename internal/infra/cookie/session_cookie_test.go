package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookie_SetFlags(t *testing.T) {
	for _, secure := range []bool{false, true} {
		rec := httptest.NewRecorder()
		NewSessionCookie(secure, 7*24*time.Hour).Set(rec, "tok")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, Name, c.Name)
		assert.Equal(t, "tok", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, 604800, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, secure, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	}
}

func TestSessionCookie_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	NewSessionCookie(false, time.Hour).Clear(rec)

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, Name+"=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "HttpOnly")
}

func TestSessionCookie_Read(t *testing.T) {
	s := NewSessionCookie(false, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := s.Read(req)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: Name, Value: "abc"})
	got, ok := s.Read(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	empty.AddCookie(&http.Cookie{Name: Name, Value: ""})
	_, ok = s.Read(empty)
	assert.False(t, ok)
}
