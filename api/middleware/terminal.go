package middleware

import (
	"net/http"
	"strings"

	"github.com/jkengne/boutique-pos-backend/pkg/logger"
)

const terminalIDHeader = "X-Terminal-Id"

// Terminal lifts the terminal identifier out of the request headers so cart
// and checkout handlers can address the right in-memory session. Requests
// without the header pass through; handlers that need a terminal reject them.
func Terminal(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			terminalID := strings.TrimSpace(r.Header.Get(terminalIDHeader))
			if terminalID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithTerminalID(r.Context(), terminalID)
			if logg != nil {
				ctx = logg.WithTerminalID(ctx, terminalID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
