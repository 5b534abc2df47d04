package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"serwer-zdjec/internal/auth"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	uid := "uid_" + uuid.NewString()

	var seenUID string
	handler := testServer.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentityFromContext(r.Context())
		require.NotNil(t, identity)
		seenUID = identity.UID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/events", nil)
	req.Header.Set("Authorization", "Bearer "+uid)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, uid, seenUID, "The verified identity should reach the wrapped handler")
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	called := false
	handler := testServer.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// Brak nagłówka
	req := httptest.NewRequest("GET", "/api/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Error)

	// Samo "Bearer " bez wartości
	req = httptest.NewRequest("GET", "/api/events", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called, "The wrapped handler must not run for a rejected credential")
}

func TestAuthMiddleware_RejectedByVerifier(t *testing.T) {
	jwtServer := NewServer(testServer.config, testServer.store, testServer.storage,
		testServer.wsHub, &auth.JWTVerifier{Secret: "middleware_test_secret"})

	called := false
	handler := jwtServer.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/events", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, called)
}
