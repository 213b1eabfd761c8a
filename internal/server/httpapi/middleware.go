package httpapi

import (
	"context"
	"net/http"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authErrorMessage is what clients see on any token failure, whatever the
// actual cause.
const authErrorMessage = "Please authenticate using valid login"

// withAuth verifies the raw token in the auth-token header and resolves the
// user identity before any handler logic runs. Missing or invalid tokens are
// rejected with HTTP 400 and an errors body; nothing is mutated.
func (s *HTTPServer) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AuthTokenHeaderName)
		if token == "" {
			writeJSON(w, http.StatusBadRequest, authErrorResponse{Errors: authErrorMessage})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, authErrorResponse{Errors: authErrorMessage})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
