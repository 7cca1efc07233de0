package controllers

import (
	"net/http"

	"github.com/jkengne/boutique-pos-backend/api/middleware"
	"github.com/jkengne/boutique-pos-backend/api/responses"
	"github.com/jkengne/boutique-pos-backend/api/validators"
	settingssvc "github.com/jkengne/boutique-pos-backend/internal/settings"
	"github.com/jkengne/boutique-pos-backend/pkg/enums"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

type updateSettingsRequest struct {
	ShopName *string `json:"shop_name,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Theme    *string `json:"theme,omitempty"`
	Language *string `json:"language,omitempty"`
}

// SettingsFetch returns the owner's shop preferences.
func SettingsFetch(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		settings, err := svc.GetSettings(r.Context(), middleware.OwnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}

// SettingsUpdate applies a partial update to the owner's shop preferences.
func SettingsUpdate(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var body updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := settingssvc.UpdateSettingsInput{ShopName: body.ShopName}
		if body.Currency != nil {
			currency := enums.Currency(*body.Currency)
			input.Currency = &currency
		}
		if body.Theme != nil {
			theme := enums.Theme(*body.Theme)
			input.Theme = &theme
		}
		if body.Language != nil {
			language := enums.Language(*body.Language)
			input.Language = &language
		}

		settings, err := svc.UpdateSettings(r.Context(), middleware.OwnerIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, settings)
	}
}
