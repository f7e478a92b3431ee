package routinggates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	internalserver "github.com/alphaholdings/entity-registry/internal/server"
	"github.com/alphaholdings/entity-registry/modules"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
	"github.com/alphaholdings/entity-registry/pkg/eventbus"
	"github.com/alphaholdings/entity-registry/pkg/metrics"
	"github.com/alphaholdings/entity-registry/pkg/middleware"
	"github.com/alphaholdings/entity-registry/pkg/routing"
	pkgserver "github.com/alphaholdings/entity-registry/pkg/server"
)

func TestExposureBaseline_Production_DoesNotRegisterDevOrTestRoutes(t *testing.T) {
	srv := buildMainServerHTTPServer(t)
	router := srv.Router()

	paths := collectRoutePaths(t, router)

	var offending []string
	for _, p := range paths {
		switch {
		case routing.HasPathPrefixOnBoundary(p, "/_dev"),
			routing.HasPathPrefixOnBoundary(p, "/debug"),
			routing.HasPathPrefixOnBoundary(p, "/__test__"):
			offending = append(offending, p)
		}
	}

	if len(offending) > 0 {
		sort.Strings(offending)
		t.Fatalf("production must not register dev or test routes (/_dev, /debug, /__test__):\n%s", strings.Join(offending, "\n"))
	}
}

func TestExposureBaseline_UI404_NotForcedJSON(t *testing.T) {
	srv := buildMainServerHTTPServer(t)
	router := srv.Router()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/__nonexistent_ui__", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.NotContains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestExposureBaseline_OpsGuard_Production_DeniesWithoutAuth(t *testing.T) {
	t.Setenv("ROUTING_ALLOWLIST_PATH", routing.DefaultAllowlistPath())

	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		OpsGuardEnabled:  true,
		RealIPHeader:     "X-Real-IP",
	}

	r := mux.NewRouter()
	r.Use(middleware.OpsGuard(conf, "server"))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExposureBaseline_OpsGuard_Production_AllowsWithToken(t *testing.T) {
	t.Setenv("ROUTING_ALLOWLIST_PATH", routing.DefaultAllowlistPath())

	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		OpsGuardEnabled:  true,
		RealIPHeader:     "X-Real-IP",
		OpsGuardToken:    "secret",
	}

	r := mux.NewRouter()
	r.Use(middleware.OpsGuard(conf, "server"))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	req.Header.Set("X-Ops-Token", "secret")
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	var paths []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		p := routePath(route)
		if strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func routePath(route *mux.Route) string {
	if route == nil {
		return ""
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	regexp, err := route.GetPathRegexp()
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(regexp, "^")
}

func buildMainServerHTTPServer(t *testing.T) *pkgserver.HTTPServer {
	t.Helper()

	conf := configuration.Use()
	logger := conf.Logger()

	pool := newLazyPool(t, conf.Database.Opts)

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	require.NoError(t, modules.Load(app, modules.BuiltInModules...))

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	srv, err := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
		Entrypoint:    "server",
	})
	require.NoError(t, err)

	return srv
}

func newLazyPool(t *testing.T, opts string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Close()
	})
	return pool
}
