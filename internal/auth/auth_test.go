package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := "my_super_secret_key_for_testing"
	email := "hiker@example.com"

	tokenString, err := GenerateJWT("firebase_uid_123", &email, secret)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, "firebase_uid_123", claims.Subject)
	require.Equal(t, email, *claims.Email)
	require.WithinDuration(t, time.Now().Add(1*time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	_, err = VerifyJWT(tokenString, "wrong_secret")
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestJWTVerifier(t *testing.T) {
	secret := "jwt_verifier_secret"
	verifier := &JWTVerifier{Secret: secret}

	tokenString, err := GenerateJWT("uid_abc", nil, secret)
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), tokenString)
	require.NoError(t, err)
	require.Equal(t, "uid_abc", identity.UID)
	require.Nil(t, identity.Email)

	_, err = verifier.Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = verifier.Verify(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrUnauthorized)

	// Wygasły token
	expiredClaims := &AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid_abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims)
	expiredString, err := expiredToken.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), expiredString)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Token bez claimu "sub" jest odrzucany
	noSubClaims := &AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	noSubToken := jwt.NewWithClaims(jwt.SigningMethodHS256, noSubClaims)
	noSubString, err := noSubToken.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), noSubString)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestFirebaseVerifier_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		var req lookupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "valid-token", req.IDToken)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{
				{"localId": "firebase_uid_xyz", "email": "someone@example.com", "emailVerified": true},
			},
		})
	}))
	defer server.Close()

	verifier := NewFirebaseVerifier(server.URL, "test-api-key")

	identity, err := verifier.Verify(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Equal(t, "firebase_uid_xyz", identity.UID)
	require.Equal(t, "someone@example.com", *identity.Email)
	require.True(t, identity.EmailVerified)
}

func TestFirebaseVerifier_NoEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{
				{"localId": "anon_uid"},
			},
		})
	}))
	defer server.Close()

	verifier := NewFirebaseVerifier(server.URL, "key")

	identity, err := verifier.Verify(context.Background(), "anon-token")
	require.NoError(t, err)
	require.Equal(t, "anon_uid", identity.UID)
	require.Nil(t, identity.Email)
	require.False(t, identity.EmailVerified)
}

func TestFirebaseVerifier_Rejections(t *testing.T) {
	t.Run("empty credential", func(t *testing.T) {
		verifier := NewFirebaseVerifier("http://localhost:1", "key")
		_, err := verifier.Verify(context.Background(), "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"INVALID_ID_TOKEN"}}`, http.StatusBadRequest)
		}))
		defer server.Close()

		verifier := NewFirebaseVerifier(server.URL, "key")
		_, err := verifier.Verify(context.Background(), "bad-token")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty user list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"users": []interface{}{}})
		}))
		defer server.Close()

		verifier := NewFirebaseVerifier(server.URL, "key")
		_, err := verifier.Verify(context.Background(), "orphan-token")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("transport failure", func(t *testing.T) {
		// Port 1 nie nasłuchuje — symulacja niedostępnej usługi
		verifier := NewFirebaseVerifier("http://127.0.0.1:1", "key")
		_, err := verifier.Verify(context.Background(), "any-token")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestHeaderVerifier(t *testing.T) {
	verifier := &HeaderVerifier{}

	identity, err := verifier.Verify(context.Background(), "raw_uid_value")
	require.NoError(t, err)
	require.Equal(t, "raw_uid_value", identity.UID)

	_, err = verifier.Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(ModeFirebase, "", "key", "")
	require.NoError(t, err)
	require.IsType(t, &FirebaseVerifier{}, v)

	v, err = NewVerifier(ModeJWT, "", "", "secret")
	require.NoError(t, err)
	require.IsType(t, &JWTVerifier{}, v)

	v, err = NewVerifier(ModeHeader, "", "", "")
	require.NoError(t, err)
	require.IsType(t, &HeaderVerifier{}, v)

	_, err = NewVerifier(ModeFirebase, "", "", "")
	require.Error(t, err)

	_, err = NewVerifier(ModeJWT, "", "", "")
	require.Error(t, err)

	_, err = NewVerifier("oauth", "", "", "")
	require.Error(t, err)
}
