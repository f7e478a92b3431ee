package controllers

import (
	"net/http"
	"strings"

	"github.com/alphaholdings/entity-registry/pkg/routing"
)

type ErrorHandlersOptions struct {
	Entrypoint    string
	AllowlistPath string
}

// NotFound builds the router's fallback handler. API paths get the uniform
// JSON error body; anything else gets a plain text response.
func NotFound(opts ...ErrorHandlersOptions) http.HandlerFunc {
	classifier := newRouteClassifier(opts)

	return func(w http.ResponseWriter, r *http.Request) {
		if classifier.IsAPI(r.URL.Path) {
			meta := map[string]string{
				"path": r.URL.Path,
			}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "not found", meta)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func MethodNotAllowed(opts ...ErrorHandlersOptions) http.HandlerFunc {
	classifier := newRouteClassifier(opts)

	return func(w http.ResponseWriter, r *http.Request) {
		if classifier.IsAPI(r.URL.Path) {
			meta := map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			writeJSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", meta)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// newRouteClassifier falls back to the built-in path heuristics when the
// allowlist cannot be loaded.
func newRouteClassifier(opts []ErrorHandlersOptions) *routing.Classifier {
	var resolved ErrorHandlersOptions
	if len(opts) > 0 {
		resolved = opts[0]
	}

	rules, err := routing.LoadAllowlist(resolved.AllowlistPath, resolved.Entrypoint)
	if err != nil {
		rules = nil
	}
	return routing.NewClassifier(rules)
}

func requestIDFromResponse(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-Id")); requestID != "" {
			return requestID
		}
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-ID")); requestID != "" {
			return requestID
		}
	}
	if r != nil {
		if requestID := strings.TrimSpace(r.Header.Get("X-Request-Id")); requestID != "" {
			return requestID
		}
		return strings.TrimSpace(r.Header.Get("X-Request-ID"))
	}
	return ""
}
