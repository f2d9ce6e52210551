// Package session implements the signed session cookie and the one-shot
// flash message cookie shared by all handlers.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/valyala/fasthttp"
)

const (
	// CookieName carries the signed session token.
	CookieName = "watchlist_session"

	// TokenTTL bounds how long a login stays valid.
	TokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims binds a session token to one user row.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

// NewToken issues a signed session token for the given user id.
func NewToken(userID uint, secretKey []byte) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(secretKey)
}

// UserIDFromToken verifies the token signature and expiry and returns the
// bound user id.
func UserIDFromToken(tokenString string, secretKey []byte) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// Set writes the session cookie on the response.
func Set(ctx *fasthttp.RequestCtx, token string) {
	var c fasthttp.Cookie
	c.SetKey(CookieName)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetMaxAge(int(TokenTTL / time.Second))
	ctx.Response.Header.SetCookie(&c)
}

// Clear expires the session cookie.
func Clear(ctx *fasthttp.RequestCtx) {
	var c fasthttp.Cookie
	c.SetKey(CookieName)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetMaxAge(-1)
	ctx.Response.Header.SetCookie(&c)
}

// Token reads the raw session token from the request, if present.
func Token(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.Request.Header.Cookie(CookieName)
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}
