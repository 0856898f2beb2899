package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// VisitorSession reads the storefront visitor session id from the request
// header, minting a fresh one when absent or malformed. The id keys the
// visitor's referral attribution between visits; it is not an auth
// credential.
func VisitorSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			w.Header().Set(sessionIDHeader, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
