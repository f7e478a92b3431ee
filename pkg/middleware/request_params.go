package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/alphaholdings/entity-registry/pkg/composables"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

// RequestParams collects per-request parameters (client IP, user agent,
// request id, acting operator) into the context for downstream consumers.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:        getRealIP(r, conf),
				UserAgent: r.UserAgent(),
				RequestID: chainRequestID(w, r, conf),
				Actor:     actorFromRequest(r, conf),
				Request:   r,
				Writer:    w,
			}
			ctx := composables.WithParams(r.Context(), params)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLogger runs earlier in the chain and pins the generated request id on
// the response header; reuse it so both report the same id.
func chainRequestID(w http.ResponseWriter, r *http.Request, conf *configuration.Configuration) string {
	if id := w.Header().Get("X-Request-Id"); id != "" {
		return id
	}
	return getRequestID(r, conf)
}

func actorFromRequest(r *http.Request, conf *configuration.Configuration) string {
	if actor := strings.TrimSpace(r.Header.Get(conf.ActorHeader)); actor != "" {
		return actor
	}
	return conf.DefaultActor
}
