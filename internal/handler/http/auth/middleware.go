// Package auth guards the API with HS256 bearer tokens and role permissions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"line-dispatch/internal/handler/http/respond"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

var (
	ErrSecretTooShort = fmt.Errorf("JWT secret must be at least %d bytes", MinSecretLength)

	errForbidden = errors.New("forbidden")
)

type ctxKey string

const ctxUser ctxKey = "user"

// User is the authenticated caller.
type User struct {
	Subject string
	Role    string
}

// UserFromContext returns the caller stored by Authz.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxUser).(User)
	return u, ok
}

// WithUser stores u in ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

// ValidateSecret rejects signing secrets shorter than MinSecretLength.
func ValidateSecret(secret []byte) error {
	if len(secret) < MinSecretLength {
		return ErrSecretTooShort
	}
	return nil
}

// Authz returns middleware that requires a valid JWT on every non-public
// endpoint, for every method. The token must carry exp, sub and role claims,
// and the role must permit the method and path.
func Authz(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			user, err := validateJWT(r.Header.Get("Authorization"), secret, time.Now())
			if err != nil {
				RecordAuthRequest("unknown", "failure")
				respond.Fail(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			if !checkRolePermission(user.Role, r.Method, r.URL.Path) {
				RecordAuthRequest(user.Role, "failure")
				RecordForbiddenAttempt(user.Role, r.Method)
				respond.Fail(w, http.StatusForbidden, errForbidden)
				return
			}
			RecordAuthRequest(user.Role, "success")
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func validateJWT(authz string, secret []byte, now time.Time) (User, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return User{}, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil || !tok.Valid {
		return User{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < now.Unix() {
		return User{}, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return User{}, errors.New("invalid sub claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return User{}, errors.New("invalid role claim")
	}
	return User{Subject: sub, Role: role}, nil
}
