package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	registrycontrollers "github.com/alphaholdings/entity-registry/modules/registry/presentation/controllers"
	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
	"github.com/alphaholdings/entity-registry/pkg/constants"
	"github.com/alphaholdings/entity-registry/pkg/middleware"
	"github.com/alphaholdings/entity-registry/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
	Entrypoint    string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.Entrypoint = options.Entrypoint
	loggerOpts.AllowlistPath = conf.RoutingAllowlistPath

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CORSOrigins()...),

		middleware.TracedMiddleware("opsGuard"),
		middleware.OpsGuard(conf, options.Entrypoint),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	handlerOpts := registrycontrollers.ErrorHandlersOptions{
		Entrypoint:    options.Entrypoint,
		AllowlistPath: conf.RoutingAllowlistPath,
	}
	serverInstance := server.NewHTTPServer(
		app,
		registrycontrollers.NotFound(handlerOpts),
		registrycontrollers.MethodNotAllowed(handlerOpts),
	)
	return serverInstance, nil
}
