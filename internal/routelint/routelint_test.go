package routelint

import (
	"context"
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
	"github.com/alphaholdings/entity-registry/pkg/routing"
	pkgserver "github.com/alphaholdings/entity-registry/pkg/server"
)

// Route hygiene for the server entrypoint: the JSON API stays on the module
// prefix, and every registered path is covered by the routing allowlist so
// the error handlers and request logger classify it correctly.

func TestServerRoutes_NoBareAPIPrefix(t *testing.T) {
	srv := buildServerHTTPServer(t)
	router := srv.Router()

	offending := make([]string, 0)
	for _, p := range collectRoutePaths(t, router) {
		if routing.HasPathPrefixOnBoundary(p, "/api") {
			offending = append(offending, p)
		}
	}

	if len(offending) > 0 {
		sort.Strings(offending)
		t.Fatalf("routes registered on the bare /api prefix (APIs live under /registry/api):\n%s", strings.Join(offending, "\n"))
	}
}

func TestServerRoutes_AllRoutesAreAllowlisted(t *testing.T) {
	srv := buildServerHTTPServer(t)
	router := srv.Router()

	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	classifier := routing.NewClassifier(rules)

	offending := make([]string, 0)
	for _, p := range collectRoutePaths(t, router) {
		if _, ok := classifier.MatchAllowlist(p); !ok {
			offending = append(offending, p)
		}
	}

	if len(offending) > 0 {
		sort.Strings(offending)
		t.Fatalf("routes not covered by config/routing/allowlist.yaml:\n%s", strings.Join(offending, "\n"))
	}
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
	result := strings.TrimPrefix(regexp, "^")
	return strings.TrimSuffix(result, "$")
}

func buildServerHTTPServer(t *testing.T) *pkgserver.HTTPServer {
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
