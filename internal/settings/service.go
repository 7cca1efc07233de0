package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	"github.com/jkengne/boutique-pos-backend/pkg/enums"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

// Service reads and writes shop preferences. Unauthenticated terminals get
// defaults held in process memory; edits there last until restart.
type Service interface {
	GetSettings(ctx context.Context, ownerID uuid.UUID) (*SettingsDTO, error)
	UpdateSettings(ctx context.Context, ownerID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error)
}

// SettingsDTO is the preferences read model.
type SettingsDTO struct {
	ShopName string         `json:"shop_name"`
	Currency enums.Currency `json:"currency"`
	Theme    enums.Theme    `json:"theme"`
	Language enums.Language `json:"language"`
}

// UpdateSettingsInput holds optional mutation values.
type UpdateSettingsInput struct {
	ShopName *string
	Currency *enums.Currency
	Theme    *enums.Theme
	Language *enums.Language
}

type settingsStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) (*models.Setting, error)
}

type service struct {
	repo     settingsStore
	defaults config.ShopConfig

	mu   sync.Mutex
	demo *SettingsDTO
}

// NewService constructs the settings service.
func NewService(repo settingsStore, defaults config.ShopConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, defaults: defaults}, nil
}

func (s *service) defaultDTO() *SettingsDTO {
	currency := enums.CurrencyXAF
	if parsed, err := enums.ParseCurrency(s.defaults.DefaultCurrency); err == nil {
		currency = parsed
	}
	name := s.defaults.DefaultName
	if strings.TrimSpace(name) == "" {
		name = "My Boutique"
	}
	return &SettingsDTO{
		ShopName: name,
		Currency: currency,
		Theme:    enums.ThemeLight,
		Language: enums.LanguageEnglish,
	}
}

func (s *service) GetSettings(ctx context.Context, ownerID uuid.UUID) (*SettingsDTO, error) {
	if ownerID == catalog.DemoOwnerID {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.demo == nil {
			s.demo = s.defaultDTO()
		}
		out := *s.demo
		return &out, nil
	}

	setting, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultDTO(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: settings lookup")
	}
	return &SettingsDTO{
		ShopName: setting.ShopName,
		Currency: setting.Currency,
		Theme:    setting.Theme,
		Language: setting.Language,
	}, nil
}

func (s *service) UpdateSettings(ctx context.Context, ownerID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	current, err := s.GetSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	applyUpdate(current, input)

	if ownerID == catalog.DemoOwnerID {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := *current
		s.demo = &out
		result := *current
		return &result, nil
	}

	setting := &models.Setting{
		OwnerID:  ownerID,
		ShopName: current.ShopName,
		Currency: current.Currency,
		Theme:    current.Theme,
		Language: current.Language,
	}
	if _, err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert settings")
	}
	return current, nil
}

func validateUpdate(input UpdateSettingsInput) error {
	if input.ShopName != nil && strings.TrimSpace(*input.ShopName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop_name cannot be empty")
	}
	if input.Currency != nil && !input.Currency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported currency %q", *input.Currency))
	}
	if input.Theme != nil && !input.Theme.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported theme %q", *input.Theme))
	}
	if input.Language != nil && !input.Language.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported language %q", *input.Language))
	}
	return nil
}

func applyUpdate(dto *SettingsDTO, input UpdateSettingsInput) {
	if input.ShopName != nil {
		dto.ShopName = strings.TrimSpace(*input.ShopName)
	}
	if input.Currency != nil {
		dto.Currency = *input.Currency
	}
	if input.Theme != nil {
		dto.Theme = *input.Theme
	}
	if input.Language != nil {
		dto.Language = *input.Language
	}
}
