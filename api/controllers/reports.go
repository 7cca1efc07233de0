package controllers

import (
	"net/http"
	"strings"

	"github.com/jkengne/boutique-pos-backend/api/middleware"
	"github.com/jkengne/boutique-pos-backend/api/responses"
	reportsvc "github.com/jkengne/boutique-pos-backend/internal/reports"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

// ReportInventory summarizes the owner's current stock position.
func ReportInventory(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		report, err := svc.InventoryReport(r.Context(), middleware.OwnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// ReportSales summarizes sales for the requested period (today, week, month).
func ReportSales(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		period := reportsvc.Period(strings.TrimSpace(r.URL.Query().Get("period")))
		report, err := svc.SalesReport(r.Context(), middleware.OwnerIDFromContext(r.Context()), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
