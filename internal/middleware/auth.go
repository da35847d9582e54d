package middleware

import (
	"net/http"
	"strings"

	"cafe-pos/internal/auth"

	"github.com/rs/zerolog"
)

// TokenVerifier validates a bearer token and returns the caller's identity.
type TokenVerifier interface {
	Authenticate(token string) (*auth.Claims, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" token.
// A missing token yields 401, an unverifiable one 403. Verified claims are
// stored in the request context.
func BearerAuth(verifier TokenVerifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				writeJSONError(w, http.StatusUnauthorized, "Token required")
				return
			}

			claims, err := verifier.Authenticate(token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
				writeJSONError(w, http.StatusForbidden, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
