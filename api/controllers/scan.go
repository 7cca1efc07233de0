package controllers

import (
	"net/http"

	"github.com/jkengne/boutique-pos-backend/api/middleware"
	"github.com/jkengne/boutique-pos-backend/api/responses"
	"github.com/jkengne/boutique-pos-backend/api/validators"
	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/internal/scan"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

type scanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type scanResponse struct {
	Kind    scan.PayloadKind    `json:"kind"`
	Tier    scan.Tier           `json:"tier,omitempty"`
	Product *catalog.ProductDTO `json:"product,omitempty"`
	Info    *scan.ProductInfo   `json:"info,omitempty"`
}

// ScanResolve parses a scanned payload and resolves it against the catalog.
// Structured payloads that miss the catalog come back as prefill data so the
// terminal can offer to create the product.
func ScanResolve(svc scan.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scan service unavailable"))
			return
		}

		var body scanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.Parse(body.Payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Resolve(r.Context(), middleware.OwnerIDFromContext(r.Context()), body.Payload)
		if err != nil {
			// a structured payload that resolves nothing is still useful:
			// hand the parsed fields back for a create form
			if payload.Kind == scan.PayloadProductInfo {
				if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
					responses.WriteSuccess(w, scanResponse{Kind: payload.Kind, Info: payload.ProductInfo})
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, scanResponse{
			Kind:    payload.Kind,
			Tier:    result.Tier,
			Product: catalog.NewProductDTO(&result.Product),
		})
	}
}
