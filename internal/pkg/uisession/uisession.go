package uisession

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const CookieName = "console_session"

// Service issues and verifies the short-lived cookie that gates the local
// UI surface. The signing key is generated per process, so every restart
// invalidates old cookies and the backend session token itself never
// reaches the browser.
type Service interface {
	IssueCookie(username string) (*http.Cookie, error)
	ExpireCookie() *http.Cookie
	JWTAuth() *jwtauth.JWTAuth
}

type UISessionService struct {
	tokenAuth *jwtauth.JWTAuth
	lifetime  time.Duration
}

func NewUISessionService(lifetime time.Duration) (Service, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return &UISessionService{
		tokenAuth: jwtauth.New("HS256", key, nil),
		lifetime:  lifetime,
	}, nil
}

func (s *UISessionService) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *UISessionService) IssueCookie(username string) (*http.Cookie, error) {
	expiresAt := time.Now().Add(s.lifetime)
	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"username": username,
		"type":     "ui",
		"exp":      expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}, nil
}

func (s *UISessionService) ExpireCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
