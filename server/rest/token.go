package rest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/movaro/fleetboard/server/storage"
)

// ErrNoToken means no usable credentials are stored. The client treats
// the request as anonymous rather than failing it.
var ErrNoToken = errors.New("rest: no stored token")

// TokenSource is the injected credential capability the client reads
// bearer tokens from. Clear is called when the backend rejects the
// token so stale credentials don't linger.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// StoredTokens adapts the sqlite credential store to a TokenSource.
// An expired access token is treated the same as no token at all.
type StoredTokens struct {
	Store storage.Tokens
}

func (s StoredTokens) Token(ctx context.Context) (string, error) {
	token, err := s.Store.LoadToken()
	if err != nil {
		return "", fmt.Errorf("reading credential store: %w", err)
	}
	if token == nil || token.AccessToken == "" {
		return "", ErrNoToken
	}
	if expired(token.AccessToken) {
		return "", ErrNoToken
	}
	return token.AccessToken, nil
}

func (s StoredTokens) Clear(ctx context.Context) error {
	return s.Store.DeleteToken()
}

// expired inspects the token's exp claim without verifying the
// signature; verification is the backend's job, we only want to avoid
// sending tokens we already know are dead.
func expired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		// not a JWT, send it as-is
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// StaticToken is a TokenSource with a fixed bearer token, mainly for
// tests and one-off scripts.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

func (t StaticToken) Clear(ctx context.Context) error {
	return nil
}
