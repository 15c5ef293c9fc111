package db

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/tallergestion/workshop-api/internal/config"
)

// NewRedis abre el cliente usado por el rate limiter del login.
// Si Redis no responde solo se registra la advertencia: el limiter
// trabaja en modo fail-open.
func NewRedis(cfg *config.Config, log zerolog.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, rate limiting degraded")
	}

	return rdb
}
