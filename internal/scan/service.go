package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/metrics"
)

// Service resolves scanner input against an owner's catalog.
type Service interface {
	Parse(raw string) (Payload, error)
	Resolve(ctx context.Context, ownerID uuid.UUID, code string) (*ResolveResult, error)
}

// ResolveResult carries the matched product and the tier that matched it.
type ResolveResult struct {
	Product models.Product `json:"product"`
	Tier    Tier           `json:"tier"`
}

type storeSelector interface {
	StoreFor(ownerID uuid.UUID) catalog.Store
}

type service struct {
	catalog storeSelector
	metrics *metrics.POSMetrics
}

// NewService constructs a scan service over the catalog. Metrics may be nil.
func NewService(catalogSvc storeSelector, posMetrics *metrics.POSMetrics) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{catalog: catalogSvc, metrics: posMetrics}, nil
}

func (s *service) Parse(raw string) (Payload, error) {
	return ParsePayload(raw)
}

func (s *service) Resolve(ctx context.Context, ownerID uuid.UUID, code string) (*ResolveResult, error) {
	payload, err := ParsePayload(code)
	if err != nil {
		return nil, err
	}

	// product-info documents resolve through their embedded barcode
	lookup := payload.Barcode
	if payload.Kind == PayloadProductInfo {
		lookup = payload.ProductInfo.Barcode
	}

	products, err := s.catalog.StoreFor(ownerID).List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products for scan")
	}

	product, tier, ok := Resolve(products, lookup)
	if !ok {
		s.metrics.IncScanResolution("miss")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no product found for %q", lookup))
	}

	s.metrics.IncScanResolution(string(tier))
	return &ResolveResult{Product: *product, Tier: tier}, nil
}
