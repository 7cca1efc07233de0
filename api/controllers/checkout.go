package controllers

import (
	"net/http"

	"github.com/jkengne/boutique-pos-backend/api/middleware"
	"github.com/jkengne/boutique-pos-backend/api/responses"
	checkoutsvc "github.com/jkengne/boutique-pos-backend/internal/checkout"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

// CheckoutCommit turns the terminal's cart into a recorded sale.
func CheckoutCommit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		terminalID, err := requireTerminal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.Commit(r.Context(), middleware.OwnerIDFromContext(r.Context()), terminalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}
