package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "swasthyasetu_session"

var ErrNoCookie = errors.New("no session cookie")

// CookieCodec wraps the opaque session ID in a signed cookie so a tampered
// ID never reaches the store.
type CookieCodec struct {
	signingKey []byte
	ttl        time.Duration
}

func NewCookieCodec(signingKey []byte, ttl time.Duration) *CookieCodec {
	return &CookieCodec{signingKey: signingKey, ttl: ttl}
}

// Issue builds the session cookie for a session ID.
func (c *CookieCodec) Issue(sid string) (*http.Cookie, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Clear builds an expired cookie that removes the session from the browser.
func (c *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Decode extracts and verifies the session ID from a request.
func (c *CookieCodec) Decode(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoCookie
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoCookie
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrNoCookie
	}
	return claims.Subject, nil
}
