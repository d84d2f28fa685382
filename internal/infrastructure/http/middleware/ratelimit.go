package middleware

import (
	"net/http"

	libredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewIPRateLimiter returns middleware that limits by client IP.
// rateFormatted: "100-M", "1000-H", "50-S"; empty disables. When a redis
// client is provided the limit is shared across instances, otherwise an
// in-memory store is used.
func NewIPRateLimiter(rateFormatted string, redisClient *libredis.Client) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	var store limiter.Store
	if redisClient != nil {
		store, err = sredis.NewStore(redisClient)
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStore()
	}
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance).Handler, nil
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
