package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/pagination"
)

// Service records and reads committed sales. For the demo owner nothing is
// persisted; Record hands back an ephemeral receipt and List serves a small
// canned history so the terminal still has something to show.
type Service interface {
	Record(ctx context.Context, ownerID uuid.UUID, input RecordSaleInput) (*SaleDTO, error)
	GetSale(ctx context.Context, ownerID, saleID uuid.UUID) (*SaleDTO, error)
	ListSales(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*SaleListResult, error)
	ListSalesSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]SaleDTO, error)
}

// RecordSaleInput is the snapshot handed over by checkout.
type RecordSaleInput struct {
	CustomerName   *string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Items          []RecordSaleItem
}

// RecordSaleItem is one line of the snapshot.
type RecordSaleItem struct {
	ProductID uuid.UUID
	Name      string
	Category  string
	UnitPrice decimal.Decimal
	Quantity  int
}

type saleStore interface {
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, ownerID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Sale, error)
	ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]models.Sale, error)
}

type service struct {
	repo saleStore
}

// NewService constructs the sales service.
func NewService(repo saleStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, ownerID uuid.UUID, input RecordSaleInput) (*SaleDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot record a sale with no items")
	}

	sale := &models.Sale{
		OwnerID:        ownerID,
		CustomerName:   input.CustomerName,
		Subtotal:       input.Subtotal,
		DiscountAmount: input.DiscountAmount,
		Total:          input.Total,
	}
	for i, item := range input.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Position:  i,
		})
	}

	// demo terminals get a receipt but no durable record
	if ownerID == catalog.DemoOwnerID {
		sale.ID = uuid.New()
		sale.CreatedAt = time.Now().UTC()
		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
		}
		return toSaleDTO(sale), nil
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
	}
	return toSaleDTO(created), nil
}

func (s *service) GetSale(ctx context.Context, ownerID, saleID uuid.UUID) (*SaleDTO, error) {
	if ownerID == catalog.DemoOwnerID {
		for _, sale := range demoSales() {
			if sale.ID == saleID {
				return toSaleDTO(&sale), nil
			}
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}

	sale, err := s.repo.FindByID(ctx, ownerID, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sale lookup")
	}
	return toSaleDTO(sale), nil
}

func (s *service) ListSales(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*SaleListResult, error) {
	if ownerID == catalog.DemoOwnerID {
		canned := demoSales()
		sort.Slice(canned, func(i, j int) bool {
			return canned[i].CreatedAt.After(canned[j].CreatedAt)
		})
		result := &SaleListResult{Sales: make([]SaleDTO, 0, len(canned))}
		for i := range canned {
			result.Sales = append(result.Sales, *toSaleDTO(&canned[i]))
		}
		return result, nil
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, ownerID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}

	result := &SaleListResult{}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Sales = append(result.Sales, *toSaleDTO(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) ListSalesSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]SaleDTO, error) {
	var rows []models.Sale
	if ownerID == catalog.DemoOwnerID {
		for _, sale := range demoSales() {
			if !sale.CreatedAt.Before(since) {
				rows = append(rows, sale)
			}
		}
	} else {
		var err error
		rows, err = s.repo.ListSince(ctx, ownerID, since)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales since")
		}
	}

	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toSaleDTO(&rows[i]))
	}
	return out, nil
}
