package handlers

import (
	"net/http"
	"strings"

	"github.com/streamhub/backend/internal/auth"
	"github.com/streamhub/backend/internal/logging"
)

// TokenVerifier resolves a bearer access token to the user id it was issued to.
type TokenVerifier interface {
	Verify(accessToken string) (string, error)
}

// RequireUser rejects requests lacking a valid bearer token and stores the
// authenticated user id on the request context for downstream handlers.
func RequireUser(verifier TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if verifier == nil {
			logging.FromContext(ctx).Error("token verifier unavailable")
			respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
			return
		}

		token := bearerToken(r)
		if token == "" {
			respondError(ctx, w, http.StatusUnauthorized, "authentication required")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			logging.FromContext(ctx).Warn("access token rejected", "error", err)
			respondError(ctx, w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(w, r.WithContext(auth.WithUserID(ctx, userID)))
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// principal pulls the authenticated user id off the context; handlers behind
// RequireUser treat an empty value as a wiring bug.
func principal(r *http.Request) string {
	return auth.UserIDFromContext(r.Context())
}
