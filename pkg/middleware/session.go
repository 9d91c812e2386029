package middleware

import (
	"net/http"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// SessionHeader identifies the shopper whose cart and search history a
// request operates on.
const SessionHeader = "X-Session-ID"

const maxSessionIDLen = 128

// RequireSession rejects requests without a well-formed X-Session-ID header
// with 401 and stores the id in the context otherwise.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if !ValidSessionID(id) {
			msg := "missing " + SessionHeader + " header"
			if id != "" {
				msg = "malformed " + SessionHeader + " header"
			}
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:      "UNAUTHORIZED",
					Message:   msg,
					RequestID: logger.CorrelationIDFromContext(r.Context()),
				},
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(logger.WithSessionID(r.Context(), id)))
	})
}

// ValidSessionID reports whether id is 1..128 characters from [A-Za-z0-9_-].
// Session ids become part of Redis keys, so separators are rejected.
func ValidSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
