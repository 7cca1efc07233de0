package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/internal/users"
	pkgauth "github.com/jkengne/boutique-pos-backend/pkg/auth"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
	"github.com/jkengne/boutique-pos-backend/pkg/security"
)

type stubUserStore struct {
	byEmail map[string]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: make(map[string]*models.User)}
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	out := *user
	s.byEmail[user.Email] = &out
	return user, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (s *stubUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, user := range s.byEmail {
		if user.ID == id {
			stamp := at
			user.LastLoginAt = &stamp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubSessions struct {
	started map[string]string
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{started: make(map[string]string)}
}

func (s *stubSessions) Start(_ context.Context, tokenID, ownerID string) error {
	s.started[tokenID] = ownerID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, tokenID string) error {
	s.revoked = append(s.revoked, tokenID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "boutique-pos",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 720,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *stubUserStore, *stubSessions) {
	t.Helper()

	store := newStubUserStore()
	sessions := newStubSessions()
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(store, sessions, log, testJWTConfig(), testPasswordConfig(), users.NormalizeEmail)
	require.NoError(t, err)
	return svc, store, sessions
}

func register(t *testing.T, svc Service, email, password string) *AccountDTO {
	t.Helper()

	account, err := svc.Register(context.Background(), RegisterInput{
		Email:       email,
		Password:    password,
		DisplayName: "Amina",
	})
	require.NoError(t, err)
	return account
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, store, _ := newTestService(t)

	account := register(t, svc, "  AMINA@Boutique.CM ", "correct-horse")
	require.Equal(t, "amina@boutique.cm", account.Email)
	require.Equal(t, "Amina", account.DisplayName)

	stored := store.byEmail["amina@boutique.cm"]
	require.NotNil(t, stored)
	require.NotEqual(t, "correct-horse", stored.PasswordHash)
	ok, err := security.VerifyPassword("correct-horse", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc, "amina@boutique.cm", "correct-horse")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "Amina@boutique.cm",
		Password:    "another-pass",
		DisplayName: "Other",
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Password: "correct-horse", DisplayName: "A"}},
		{"malformed email", RegisterInput{Email: "not-an-email", Password: "correct-horse", DisplayName: "A"}},
		{"short password", RegisterInput{Email: "a@b.cm", Password: "short", DisplayName: "A"}},
		{"blank display name", RegisterInput{Email: "a@b.cm", Password: "correct-horse", DisplayName: "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestLoginMintsTokenAndStartsSession(t *testing.T) {
	svc, store, sessions := newTestService(t)
	account := register(t, svc, "amina@boutique.cm", "correct-horse")

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Amina@Boutique.cm",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.Equal(t, account.ID, result.Account.ID)
	require.WithinDuration(t, time.Now().UTC().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.UserID)
	require.Equal(t, account.ID.String(), sessions.started[claims.ID])

	stored := store.byEmail["amina@boutique.cm"]
	require.NotNil(t, stored.LastLoginAt)
	require.NotNil(t, result.Account.LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, store, _ := newTestService(t)
	register(t, svc, "amina@boutique.cm", "correct-horse")
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: "amina@boutique.cm", Password: "wrong-pass"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@boutique.cm", Password: "correct-horse"})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	store.byEmail["amina@boutique.cm"].IsActive = false
	_, err = svc.Login(ctx, LoginInput{Email: "amina@boutique.cm", Password: "correct-horse"})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "token-123"))
	require.Equal(t, []string{"token-123"}, sessions.revoked)

	err := svc.Logout(context.Background(), "  ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestAccountLookup(t *testing.T) {
	svc, _, _ := newTestService(t)
	account := register(t, svc, "amina@boutique.cm", "correct-horse")

	found, err := svc.Account(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account.Email, found.Email)

	_, err = svc.Account(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
