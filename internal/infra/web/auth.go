package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookie = "admin_session"

// AuthManager mints and verifies short-lived HS256 session tokens for the
// admin panel. Tokens travel either as a bearer header or as the session
// cookie; both carry the same claims.
type AuthManager struct {
	secret []byte
	secure bool
	ttl    time.Duration
}

func NewAuthManager(secret string, secure bool, ttl time.Duration) *AuthManager {
	return &AuthManager{secret: []byte(secret), secure: secure, ttl: ttl}
}

type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Mint issues a fresh admin token, sets it as the session cookie, and returns
// the signed string for header-based clients.
func (a *AuthManager) Mint(w http.ResponseWriter) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}
	a.setCookie(w, signed, int(a.ttl.Seconds()))
	return signed, nil
}

// Clear expires the session cookie.
func (a *AuthManager) Clear(w http.ResponseWriter) {
	a.setCookie(w, "", -1)
}

func (a *AuthManager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ParseFromRequest verifies the token from the Authorization header or, when
// absent, from the session cookie.
func (a *AuthManager) ParseFromRequest(r *http.Request) (*AdminClaims, error) {
	if hdr := r.Header.Get("Authorization"); hdr != "" {
		if tok, ok := strings.CutPrefix(hdr, "Bearer "); ok {
			return a.parse(strings.TrimSpace(tok))
		}
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return a.parse(c.Value)
	}
	return nil, errors.New("missing token")
}

func (a *AuthManager) parse(tok string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
