package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"worldpav/api"
)

// Health reports whether the database answers within two seconds.
func Health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			api.Fail(w, r, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
		api.Success(w, r, map[string]string{"status": "ok"})
	}
}
