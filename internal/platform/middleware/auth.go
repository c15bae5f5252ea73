package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coldchain/pkg/domain"
	"coldchain/pkg/requestcontext"
)

// CallerValidator validates a bearer token and yields the caller identity.
type CallerValidator interface {
	ValidateCallerToken(tokenString string) (domain.EntityID, error)
}

// RequireCaller authenticates mutating requests. It only establishes WHO is
// calling; whether that caller may write is the access controller's decision.
// Read routes are mounted without this middleware.
func RequireCaller(validator CallerValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			caller, err := validator.ValidateCallerToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected caller token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				unauthorized(w)
				return
			}

			ctx := requestcontext.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"missing or invalid bearer token"}`))
}
