package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/jkengne/boutique-pos-backend/pkg/auth"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
	"github.com/jkengne/boutique-pos-backend/pkg/security"
)

const minPasswordLen = 8

// Service handles account registration and the login/logout session lifecycle.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AccountDTO, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string) error
	Account(ctx context.Context, userID uuid.UUID) (*AccountDTO, error)
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput carries a credentials check.
type LoginInput struct {
	Email    string
	Password string
}

// AccountDTO is the account read model.
type AccountDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResult pairs the minted token with its account.
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Account   AccountDTO `json:"account"`
}

type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionWriter interface {
	Start(ctx context.Context, tokenID, ownerID string) error
	Revoke(ctx context.Context, tokenID string) error
}

type service struct {
	users     userStore
	sessions  sessionWriter
	log       *logger.Logger
	jwtCfg    config.JWTConfig
	pwCfg     config.PasswordConfig
	normEmail func(string) string
	now       func() time.Time
}

// NewService constructs the auth service.
func NewService(users userStore, sessions sessionWriter, log *logger.Logger, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, normEmail func(string) string) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if normEmail == nil {
		return nil, fmt.Errorf("email normalizer required")
	}
	return &service{
		users:     users,
		sessions:  sessions,
		log:       log,
		jwtCfg:    jwtCfg,
		pwCfg:     pwCfg,
		normEmail: normEmail,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AccountDTO, error) {
	email := s.normEmail(input.Email)
	if err := validateRegister(email, input); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: email lookup")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		IsActive:     true,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}

	s.log.Info(s.log.WithOwnerID(ctx, created.ID.String()), "account registered")

	return toAccountDTO(created), nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := s.normEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: email lookup")
	}
	if !user.IsActive {
		return nil, invalidCredentials()
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	now := s.now()
	jti := uuid.NewString()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Start(ctx, jti, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: start session")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		// the login already succeeded; a stale timestamp is not worth failing it
		s.log.Warn(s.log.WithFields(ctx, map[string]any{
			"owner_id": user.ID.String(),
			"error":    err.Error(),
		}), "failed to stamp last login")
	} else {
		user.LastLoginAt = &now
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		Account:   *toAccountDTO(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token id is required")
	}
	if err := s.sessions.Revoke(ctx, tokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: revoke session")
	}
	return nil
}

func (s *service) Account(ctx context.Context, userID uuid.UUID) (*AccountDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: account lookup")
	}
	return toAccountDTO(user), nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

func validateRegister(email string, input RegisterInput) error {
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is not valid")
	}
	if len(input.Password) < minPasswordLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "display name is required")
	}
	return nil
}

func toAccountDTO(user *models.User) *AccountDTO {
	return &AccountDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
