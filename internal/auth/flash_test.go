package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetFlash(w, "Account created. Please log in.", "success")

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	w2 := httptest.NewRecorder()
	f := PopFlash(w2, req)
	require.NotNil(t, f)
	assert.Equal(t, "Account created. Please log in.", f.Message)
	assert.Equal(t, "success", f.Kind)

	// Popping clears the cookie.
	cleared := false
	for _, c := range w2.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopFlashWithoutCookie(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, PopFlash(w, req))
}
