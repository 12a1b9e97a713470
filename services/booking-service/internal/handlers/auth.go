package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gymslot/gymslot/libs/auth"
	"github.com/gymslot/gymslot/services/booking-service/internal/booking"
)

var errNoToken = errors.New("missing bearer token")

// Authenticator turns a verified bearer token into an explicit booking.Caller.
// HS256 with a shared secret is the default; when a JWKS URL is configured,
// RS256 tokens are accepted too.
type Authenticator struct {
	secret string
	jwks   *auth.JWKSClient
}

func NewAuthenticator(secret string, jwks *auth.JWKSClient) *Authenticator {
	return &Authenticator{secret: secret, jwks: jwks}
}

func (a *Authenticator) Caller(r *http.Request) (booking.Caller, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return booking.Caller{}, errNoToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	claims, err := a.verify(token)
	if err != nil {
		return booking.Caller{}, err
	}
	return booking.Caller{
		UserID:        claims.Sub,
		Role:          claims.Role,
		Authenticated: claims.Sub != "",
	}, nil
}

func (a *Authenticator) verify(token string) (*auth.Claims, error) {
	if a.jwks != nil {
		header, err := auth.ParseHeader(token)
		if err == nil && header.Alg == "RS256" {
			key, err := a.jwks.Get(header.Kid)
			if err != nil {
				return nil, auth.ErrInvalidToken
			}
			return auth.VerifyRS256(token, key)
		}
	}
	return auth.ParseAndVerifyHS256(token, a.secret)
}
