package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jkengne/boutique-pos-backend/api/middleware"
	"github.com/jkengne/boutique-pos-backend/api/responses"
	"github.com/jkengne/boutique-pos-backend/api/validators"
	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

type createProductRequest struct {
	Name              string  `json:"name" validate:"required"`
	Category          string  `json:"category" validate:"required"`
	CostPrice         string  `json:"cost_price" validate:"required"`
	SellingPrice      string  `json:"selling_price" validate:"required"`
	Quantity          int     `json:"quantity" validate:"min=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"min=0"`
	Barcode           *string `json:"barcode,omitempty"`
	Description       *string `json:"description,omitempty"`
}

type updateProductRequest struct {
	Name              *string `json:"name,omitempty"`
	Category          *string `json:"category,omitempty"`
	CostPrice         *string `json:"cost_price,omitempty"`
	SellingPrice      *string `json:"selling_price,omitempty"`
	Quantity          *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	Barcode           *string `json:"barcode,omitempty"`
	Description       *string `json:"description,omitempty"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func parsePrice(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price").
			WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

func parseOptionalPrice(raw *string, field string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	value, err := parsePrice(*raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func productIDFromURL(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return id, nil
}

// ProductList returns the owner's catalog.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context(), middleware.OwnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductDetail returns one product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), middleware.OwnerIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductCreate adds a product to the owner's catalog.
func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		costPrice, err := parsePrice(body.CostPrice, "cost_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sellingPrice, err := parsePrice(body.SellingPrice, "selling_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), middleware.OwnerIDFromContext(r.Context()), catalog.CreateProductInput{
			Name:              body.Name,
			Category:          body.Category,
			CostPrice:         costPrice,
			SellingPrice:      sellingPrice,
			Quantity:          body.Quantity,
			LowStockThreshold: body.LowStockThreshold,
			Barcode:           body.Barcode,
			Description:       body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate applies a partial update to a product.
func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		costPrice, err := parseOptionalPrice(body.CostPrice, "cost_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sellingPrice, err := parseOptionalPrice(body.SellingPrice, "selling_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), middleware.OwnerIDFromContext(r.Context()), productID, catalog.UpdateProductInput{
			Name:              body.Name,
			Category:          body.Category,
			CostPrice:         costPrice,
			SellingPrice:      sellingPrice,
			Quantity:          body.Quantity,
			LowStockThreshold: body.LowStockThreshold,
			Barcode:           body.Barcode,
			Description:       body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product from the owner's catalog.
func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), middleware.OwnerIDFromContext(r.Context()), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductAdjustStock applies a signed stock delta to a product.
func ProductAdjustStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := productIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustStockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdjustStock(r.Context(), middleware.OwnerIDFromContext(r.Context()), productID, body.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
