package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultLookupURL = "https://identitytoolkit.googleapis.com/v1/accounts:lookup"

// FirebaseVerifier odpytuje Identity Toolkit REST API przy każdym żądaniu.
// Brak cache — każda weryfikacja to jedno wywołanie HTTP.
type FirebaseVerifier struct {
	client    *http.Client
	lookupURL string
	apiKey    string
}

func NewFirebaseVerifier(lookupURL, apiKey string) *FirebaseVerifier {
	if lookupURL == "" {
		lookupURL = DefaultLookupURL
	}
	return &FirebaseVerifier{
		client:    &http.Client{Timeout: 10 * time.Second},
		lookupURL: lookupURL,
		apiKey:    apiKey,
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID       string `json:"localId"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	} `json:"users"`
}

func (v *FirebaseVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, ErrUnauthorized
	}

	body, err := json.Marshal(lookupRequest{IDToken: credential})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookup request: %w", err)
	}

	reqURL := v.lookupURL + "?key=" + url.QueryEscape(v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		// Niedostępność usługi traktujemy tak samo jak odrzucenie tokenu.
		return nil, ErrUnauthorized
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorized
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrUnauthorized
	}

	if len(result.Users) == 0 || result.Users[0].LocalID == "" {
		return nil, ErrUnauthorized
	}

	user := result.Users[0]
	identity := &Identity{
		UID:           user.LocalID,
		EmailVerified: user.EmailVerified,
	}
	if user.Email != "" {
		identity.Email = &user.Email
	}

	return identity, nil
}
