package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	pkgauth "github.com/jkengne/boutique-pos-backend/pkg/auth"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/types"
)

type stubChecker struct {
	active map[string]bool
}

func (s *stubChecker) HasSession(_ context.Context, tokenID string) (bool, error) {
	return s.active[tokenID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "boutique-pos",
		ExpirationMinutes: 60,
	}
}

func mintToken(t *testing.T, userID uuid.UUID, jti string) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Email:  "amina@boutique.cm",
		JTI:    jti,
	})
	require.NoError(t, err)
	return token
}

func captureOwner(owner *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*owner = OwnerIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Error.Code
}

func TestAuthAcceptsLiveSession(t *testing.T) {
	userID := uuid.New()
	checker := &stubChecker{active: map[string]bool{"jti-1": true}}

	var owner uuid.UUID
	handler := Auth(testJWTConfig(), checker, nil)(captureOwner(&owner))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, userID, "jti-1"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, userID, owner)
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	checker := &stubChecker{active: map[string]bool{}}
	handler := Auth(testJWTConfig(), checker, nil)(captureOwner(new(uuid.UUID)))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, string(pkgerrors.CodeUnauthorized), decodeErrorCode(t, w))

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &stubChecker{active: map[string]bool{}}
	handler := Auth(testJWTConfig(), checker, nil)(captureOwner(new(uuid.UUID)))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, uuid.New(), "jti-revoked"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthFallsBackToDemoOwner(t *testing.T) {
	checker := &stubChecker{active: map[string]bool{"jti-2": true}}

	var owner uuid.UUID
	handler := OptionalAuth(testJWTConfig(), checker, nil)(captureOwner(&owner))

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, catalog.DemoOwnerID, owner)

	// a presented token is still fully verified
	userID := uuid.New()
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, userID, "jti-2"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, userID, owner)

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTerminalHeaderExtraction(t *testing.T) {
	var terminal string
	handler := Terminal(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		terminal = TerminalIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Terminal-Id", "  till-1 ")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, "till-1", terminal)

	r = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, "", terminal)
}
