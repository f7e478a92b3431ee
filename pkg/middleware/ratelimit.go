package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	libredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/alphaholdings/entity-registry/pkg/configuration"
)

type RateLimitConfig struct {
	// RequestsPerPeriod is the number of requests allowed per Period.
	RequestsPerPeriod int
	// Period defaults to one second.
	Period time.Duration
	Store  limiter.Store
	// KeyFunc extracts the limiting key; defaults to the client IP.
	KeyFunc func(r *http.Request) string
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opt, err := libredis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := libredis.NewClient(opt)
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "entity_registry:ratelimit",
		MaxRetry: 3,
	})
}

func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}
	keyFunc := config.KeyFunc
	if keyFunc == nil {
		conf := configuration.Use()
		keyFunc = func(r *http.Request) string {
			ip, _ := realIP(r, conf.RealIPHeader)
			return ip
		}
	}

	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lctx, err := instance.Get(r.Context(), keyFunc(r))
			if err != nil {
				http.Error(w, "rate limiter unavailable", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
