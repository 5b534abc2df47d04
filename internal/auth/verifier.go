package auth

import (
	"context"
	"errors"
	"fmt"
)

// Identity to potwierdzona tożsamość zwrócona przez usługę zewnętrzną.
type Identity struct {
	UID           string  `json:"uid"`
	Email         *string `json:"email,omitempty"`
	EmailVerified bool    `json:"email_verified"`
}

var ErrUnauthorized = errors.New("invalid or unverifiable credential")

type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

const (
	ModeFirebase = "firebase"
	ModeJWT      = "jwt"
	ModeHeader   = "header"
)

func NewVerifier(mode, lookupURL, apiKey, jwtSecret string) (Verifier, error) {
	switch mode {
	case ModeFirebase:
		if apiKey == "" {
			return nil, fmt.Errorf("auth mode %q requires firebase.api_key", mode)
		}
		return NewFirebaseVerifier(lookupURL, apiKey), nil
	case ModeJWT:
		if jwtSecret == "" {
			return nil, fmt.Errorf("auth mode %q requires jwt.secret", mode)
		}
		return &JWTVerifier{Secret: jwtSecret}, nil
	case ModeHeader:
		return &HeaderVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", mode)
	}
}
