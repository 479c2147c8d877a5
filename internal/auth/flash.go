package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Message string
	Kind    string // success, danger, info
}

// SetFlash stores a flash message in a cookie read by the next render.
func SetFlash(w http.ResponseWriter, message, kind string) {
	v := base64.URLEncoding.EncodeToString([]byte(kind + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    v,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// PopFlash returns the pending flash, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	raw, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil
	}
	return &Flash{Message: msg, Kind: kind}
}
