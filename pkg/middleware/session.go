package middleware

import (
	"net/http"
	"strings"

	"streamvault/pkg/utils"

	"go.uber.org/zap"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionQueryParam = "session"

	maxSessionIDLength = 128
)

// ViewerSession resolves the anonymous viewer session from the X-Session-ID
// header or the session query parameter, minting a new one when neither is
// usable. The id is echoed back in the response header.
func ViewerSession(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				sessionID = strings.TrimSpace(r.URL.Query().Get(SessionQueryParam))
			}

			if len(sessionID) > maxSessionIDLength {
				logger.Warn("Discarding oversized session id",
					zap.Int("length", len(sessionID)),
					zap.String("path", r.URL.Path),
				)
				sessionID = ""
			}

			if sessionID == "" {
				sessionID = utils.GenerateUUID().String()
			}

			w.Header().Set(SessionHeader, sessionID)
			ctx := utils.SetSessionContext(r.Context(), sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
