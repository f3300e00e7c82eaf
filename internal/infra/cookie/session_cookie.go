package cookie

import (
	"net/http"
	"time"
)

// セッションcookie名
const Name = "corner_auth_token"

// セッションcookieの読み書き
type SessionCookie struct {
	secure bool
	maxAge time.Duration
}

// secureはproductionのときだけtrue
func NewSessionCookie(secure bool, maxAge time.Duration) *SessionCookie {
	return &SessionCookie{secure: secure, maxAge: maxAge}
}

// トークンをcookieにセット
func (s *SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(s.maxAge/time.Second)))
}

// cookieを消す（Max-Age=-1）
func (s *SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

// cookieがなければ ("", false)
func (s *SessionCookie) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
