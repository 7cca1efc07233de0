package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/internal/cart"
	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/internal/sales"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/metrics"
)

// Service turns a terminal's cart into a committed sale.
//
// The commit pipeline re-validates every line against live stock, records
// the sale, then decrements stock line by line in cart order. Decrements are
// best effort: the sale is already the durable record and a failed decrement
// is reported, not rolled back.
type Service interface {
	Commit(ctx context.Context, ownerID uuid.UUID, terminalID string) (*sales.SaleDTO, error)
}

type storeSelector interface {
	StoreFor(ownerID uuid.UUID) catalog.Store
}

type saleRecorder interface {
	Record(ctx context.Context, ownerID uuid.UUID, input sales.RecordSaleInput) (*sales.SaleDTO, error)
}

// StockConflictDetail names one cart line that no longer fits current stock.
type StockConflictDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

type service struct {
	sessions *cart.SessionStore
	catalog  storeSelector
	recorder saleRecorder
	metrics  *metrics.POSMetrics
}

// NewService constructs the checkout service. Metrics may be nil.
func NewService(sessions *cart.SessionStore, catalogSvc storeSelector, recorder saleRecorder, posMetrics *metrics.POSMetrics) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("sale recorder required")
	}
	return &service{
		sessions: sessions,
		catalog:  catalogSvc,
		recorder: recorder,
		metrics:  posMetrics,
	}, nil
}

func (s *service) Commit(ctx context.Context, ownerID uuid.UUID, terminalID string) (*sales.SaleDTO, error) {
	if strings.TrimSpace(terminalID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "terminal id is required")
	}

	started := time.Now()
	mode := "durable"
	if ownerID == catalog.DemoOwnerID {
		mode = "demo"
	}

	snapshot := s.sessions.Snapshot(ownerID, terminalID)
	if len(snapshot.Lines) == 0 {
		s.metrics.IncCommitFailure("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "add items to the cart before processing the sale")
	}

	store := s.catalog.StoreFor(ownerID)
	if err := s.revalidateStock(ctx, store, ownerID, snapshot.Lines); err != nil {
		s.metrics.IncCommitFailure("stock_conflict")
		return nil, err
	}

	totals := snapshot.Totals()
	input := sales.RecordSaleInput{
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
	}
	if name := strings.TrimSpace(snapshot.CustomerName); name != "" {
		input.CustomerName = &name
	}
	for _, line := range snapshot.Lines {
		input.Items = append(input.Items, sales.RecordSaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Category:  line.Category,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	sale, err := s.recorder.Record(ctx, ownerID, input)
	if err != nil {
		s.metrics.IncCommitFailure("record_failed")
		return nil, err
	}

	if err := s.decrementStock(ctx, store, ownerID, snapshot.Lines); err != nil {
		s.metrics.IncCommitFailure("stock_decrement")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sale recorded but stock update incomplete").
			WithDetails(map[string]any{"sale_id": sale.ID})
	}

	s.clearCart(ownerID, terminalID)
	s.metrics.IncSaleCommitted(mode)
	s.metrics.ObserveCommitDuration(mode, time.Since(started))
	return sale, nil
}

// revalidateStock re-reads every product so that quantities added earlier in
// the session still fit what is on hand right now.
func (s *service) revalidateStock(ctx context.Context, store catalog.Store, ownerID uuid.UUID, lines []cart.Line) error {
	var conflicts []StockConflictDetail
	for _, line := range lines {
		product, err := store.FindByID(ctx, ownerID, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				conflicts = append(conflicts, StockConflictDetail{
					ProductID: line.ProductID,
					Name:      line.Name,
					Requested: line.Quantity,
					Available: 0,
				})
				continue
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: re-reading stock")
		}
		if line.Quantity > product.Quantity {
			conflicts = append(conflicts, StockConflictDetail{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: line.Quantity,
				Available: product.Quantity,
			})
		}
	}
	if len(conflicts) > 0 {
		return pkgerrors.New(pkgerrors.CodeStockConflict, "stock changed since items were added").
			WithDetails(map[string]any{"conflicts": conflicts})
	}
	return nil
}

// decrementStock walks the lines in cart order and applies each delta. A
// failure on one line does not stop the others; all failures are combined.
func (s *service) decrementStock(ctx context.Context, store catalog.Store, ownerID uuid.UUID, lines []cart.Line) error {
	var combined error
	for _, line := range lines {
		if _, err := store.AdjustQuantity(ctx, ownerID, line.ProductID, -line.Quantity); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("decrement %s: %w", line.ProductID, err))
		}
	}
	return combined
}

func (s *service) clearCart(ownerID uuid.UUID, terminalID string) {
	_ = s.sessions.Mutate(ownerID, terminalID, func(c *cart.Cart) error {
		c.Reset()
		return nil
	})
}
