// Package auth resolves bearer credentials against the external identity
// provider. The rest of the service only sees Claims; token mechanics stay
// behind the TokenVerifier interface.
package auth

import (
	"context"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"github.com/megaschedule/megaschedule/internal/apperr"
)

// Claims is the subset of identity-provider claims the service cares about.
type Claims struct {
	Email    string
	Name     string
	GoogleID string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// GoogleVerifier validates Google ID tokens against a fixed OAuth client ID.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	// Misconfiguration is indistinguishable from a bad credential to the
	// caller; both surface as unauthenticated.
	if v.clientID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "GOOGLE_CLIENT_ID not configured")
	}

	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(token, []string{v.clientID}); err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthenticated, "invalid authentication token", err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthenticated, "token verification failed", err)
	}

	if claimSet.Iss != "accounts.google.com" && claimSet.Iss != "https://accounts.google.com" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "invalid authentication token: wrong issuer")
	}

	name := claimSet.Name
	if name == "" {
		name = claimSet.Email
	}

	return &Claims{
		Email:    claimSet.Email,
		Name:     name,
		GoogleID: claimSet.Sub,
	}, nil
}
