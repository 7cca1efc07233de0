package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/internal/sales"
	"github.com/jkengne/boutique-pos-backend/internal/settings"
	"github.com/jkengne/boutique-pos-backend/pkg/currency"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

// Period selects the sales report window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Service derives inventory and sales summaries for the dashboard.
type Service interface {
	InventoryReport(ctx context.Context, ownerID uuid.UUID) (*InventoryReport, error)
	SalesReport(ctx context.Context, ownerID uuid.UUID, period Period) (*SalesReport, error)
}

// InventoryReport summarizes what is on the shelves right now.
type InventoryReport struct {
	TotalProducts    int             `json:"total_products"`
	TotalUnits       int             `json:"total_units"`
	StockCostValue   decimal.Decimal `json:"stock_cost_value"`
	StockRetailValue decimal.Decimal `json:"stock_retail_value"`
	OutOfStockCount  int             `json:"out_of_stock_count"`
	LowStockItems    []LowStockItem  `json:"low_stock_items"`
}

// LowStockItem flags a product at or below its reorder threshold.
type LowStockItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
}

// SalesReport summarizes committed sales over the window.
type SalesReport struct {
	Period         Period          `json:"period"`
	Since          time.Time       `json:"since"`
	SaleCount      int             `json:"sale_count"`
	ItemsSold      int             `json:"items_sold"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	TopProduct     *TopProduct     `json:"top_product,omitempty"`
}

// TopProduct is the best seller of the window by units.
type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type storeSelector interface {
	StoreFor(ownerID uuid.UUID) catalog.Store
}

type salesReader interface {
	ListSalesSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]sales.SaleDTO, error)
}

type settingsReader interface {
	GetSettings(ctx context.Context, ownerID uuid.UUID) (*settings.SettingsDTO, error)
}

type service struct {
	catalog  storeSelector
	sales    salesReader
	settings settingsReader
	now      func() time.Time
}

// NewService constructs the reports service.
func NewService(catalogSvc storeSelector, salesSvc salesReader, settingsSvc settingsReader) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if salesSvc == nil {
		return nil, fmt.Errorf("sales service required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
	}
	return &service{
		catalog:  catalogSvc,
		sales:    salesSvc,
		settings: settingsSvc,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) InventoryReport(ctx context.Context, ownerID uuid.UUID) (*InventoryReport, error) {
	products, err := s.catalog.StoreFor(ownerID).List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products for report")
	}

	report := &InventoryReport{
		StockCostValue:   decimal.Zero,
		StockRetailValue: decimal.Zero,
	}
	for _, product := range products {
		report.TotalProducts++
		report.TotalUnits += product.Quantity
		qty := decimal.NewFromInt(int64(product.Quantity))
		report.StockCostValue = report.StockCostValue.Add(product.CostPrice.Mul(qty))
		report.StockRetailValue = report.StockRetailValue.Add(product.SellingPrice.Mul(qty))
		if product.Quantity == 0 {
			report.OutOfStockCount++
		}
		if product.IsLowStock() {
			report.LowStockItems = append(report.LowStockItems, LowStockItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  product.Quantity,
				Threshold: product.LowStockThreshold,
			})
		}
	}
	return report, nil
}

func (s *service) SalesReport(ctx context.Context, ownerID uuid.UUID, period Period) (*SalesReport, error) {
	since, err := s.windowStart(period)
	if err != nil {
		return nil, err
	}

	rows, err := s.sales.ListSalesSince(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Period:         period,
		Since:          since,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
	}
	unitsByProduct := map[string]int{}
	for _, sale := range rows {
		report.SaleCount++
		report.Subtotal = report.Subtotal.Add(sale.Subtotal)
		report.DiscountAmount = report.DiscountAmount.Add(sale.DiscountAmount)
		report.Total = report.Total.Add(sale.Total)
		for _, item := range sale.Items {
			report.ItemsSold += item.Quantity
			unitsByProduct[item.Name] += item.Quantity
		}
	}

	for name, quantity := range unitsByProduct {
		if report.TopProduct == nil ||
			quantity > report.TopProduct.Quantity ||
			(quantity == report.TopProduct.Quantity && name < report.TopProduct.Name) {
			report.TopProduct = &TopProduct{Name: name, Quantity: quantity}
		}
	}

	shop, err := s.settings.GetSettings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	report.TotalFormatted = currency.Format(report.Total, shop.Currency)

	return report, nil
}

func (s *service) windowStart(period Period) (time.Time, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case PeriodToday, "":
		return today, nil
	case PeriodWeek:
		return today.AddDate(0, 0, -6), nil
	case PeriodMonth:
		return today.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported report period %q", period))
	}
}
