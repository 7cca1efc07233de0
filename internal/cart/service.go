package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

// Service manages per-terminal carts. Stock is checked before every
// mutation so a cart can never hold more of a product than the catalog
// has on hand at the time of the edit.
type Service interface {
	Get(ctx context.Context, ownerID uuid.UUID, terminalID string) (*CartDTO, error)
	AddItem(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID) (*CartDTO, error)
	SetLineQuantity(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID) (*CartDTO, error)
	SetDiscount(ctx context.Context, ownerID uuid.UUID, terminalID string, percent decimal.Decimal) (*CartDTO, error)
	SetCustomerName(ctx context.Context, ownerID uuid.UUID, terminalID string, name string) (*CartDTO, error)
	Clear(ctx context.Context, ownerID uuid.UUID, terminalID string) (*CartDTO, error)
}

// CartDTO is the cart read model with derived totals.
type CartDTO struct {
	TerminalID      string          `json:"terminal_id"`
	Lines           []Line          `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Totals          Totals          `json:"totals"`
}

type storeSelector interface {
	StoreFor(ownerID uuid.UUID) catalog.Store
}

type service struct {
	sessions *SessionStore
	catalog  storeSelector
}

// NewService constructs the cart service over the shared session store.
func NewService(sessions *SessionStore, catalogSvc storeSelector) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{sessions: sessions, catalog: catalogSvc}, nil
}

func toCartDTO(cart *Cart) *CartDTO {
	lines := append([]Line(nil), cart.Lines...)
	return &CartDTO{
		TerminalID:      cart.TerminalID,
		Lines:           lines,
		DiscountPercent: cart.DiscountPercent,
		CustomerName:    cart.CustomerName,
		Totals:          cart.Totals(),
	}
}

func (s *service) Get(ctx context.Context, ownerID uuid.UUID, terminalID string) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}
	snapshot := s.sessions.Snapshot(ownerID, terminalID)
	return toCartDTO(&snapshot), nil
}

func (s *service) AddItem(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}

	product, err := s.catalog.StoreFor(ownerID).FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, mapProductLookup(err)
	}
	if product.Quantity == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, fmt.Sprintf("%s is currently out of stock", product.Name))
	}

	var dto *CartDTO
	err = s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		if line := cart.FindLine(productID); line != nil {
			if line.Quantity >= product.Quantity {
				return pkgerrors.New(pkgerrors.CodeStockLimit,
					fmt.Sprintf("cannot add more %s, only %d in stock", product.Name, product.Quantity))
			}
			line.Quantity++
		} else {
			cart.Lines = append(cart.Lines, Line{
				ProductID: product.ID,
				Name:      product.Name,
				Category:  product.Category,
				UnitPrice: product.SellingPrice,
				Quantity:  1,
			})
		}
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) SetLineQuantity(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	var dto *CartDTO
	err := s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		line := cart.FindLine(productID)
		if line == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
		}

		// zero removes the line, matching how cashiers clear a row
		if quantity == 0 {
			cart.RemoveLine(productID)
			dto = toCartDTO(cart)
			return nil
		}

		product, err := s.catalog.StoreFor(ownerID).FindByID(ctx, ownerID, productID)
		if err != nil {
			return mapProductLookup(err)
		}
		if quantity > product.Quantity {
			return pkgerrors.New(pkgerrors.CodeStockLimit,
				fmt.Sprintf("only %d of %s available", product.Quantity, product.Name))
		}

		line.Quantity = quantity
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) RemoveItem(ctx context.Context, ownerID uuid.UUID, terminalID string, productID uuid.UUID) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}

	var dto *CartDTO
	err := s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		cart.RemoveLine(productID)
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) SetDiscount(ctx context.Context, ownerID uuid.UUID, terminalID string, percent decimal.Decimal) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}
	if percent.IsNegative() || percent.GreaterThan(oneHundred) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100 percent")
	}

	var dto *CartDTO
	err := s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		cart.DiscountPercent = percent
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) SetCustomerName(ctx context.Context, ownerID uuid.UUID, terminalID string, name string) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}

	var dto *CartDTO
	err := s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		cart.CustomerName = strings.TrimSpace(name)
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Clear(ctx context.Context, ownerID uuid.UUID, terminalID string) (*CartDTO, error) {
	if err := validateTerminalID(terminalID); err != nil {
		return nil, err
	}

	var dto *CartDTO
	err := s.sessions.Mutate(ownerID, terminalID, func(cart *Cart) error {
		cart.Reset()
		dto = toCartDTO(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func validateTerminalID(terminalID string) error {
	if strings.TrimSpace(terminalID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "terminal id is required")
	}
	return nil
}

func mapProductLookup(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: product lookup")
}
