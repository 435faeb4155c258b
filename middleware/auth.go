package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"zinescan/auth"
)

type contextKey string

const profileIDKey contextKey = "profileID"

// ProfileID returns the authenticated creator's profile id from the request
// context, if the auth middleware set one.
func ProfileID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileIDKey).(string)
	return id, ok && id != ""
}

// CreatorAuth resolves the request's bearer token to a creator profile via
// the external identity provider.
type CreatorAuth struct {
	verifier auth.Verifier
}

func NewCreatorAuth(verifier auth.Verifier) *CreatorAuth {
	return &CreatorAuth{verifier: verifier}
}

// Protect returns a middleware function that requires authentication
func (ca *CreatorAuth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Missing authorization token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Invalid authorization header format. Use: Bearer <token>")
			return
		}

		profileID, err := ca.verifier.Verify(r.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				log.Error().Err(err).Msg("Identity provider verification failed")
			}
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), profileIDKey, profileID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WithProfileID stamps a profile id onto a context. Test helper.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}
