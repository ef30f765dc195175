package storage

import (
	"fmt"

	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewStore returns the Store selected by the configured driver.
func NewStore(cfg config.StoreConfig) (Store, error) {
	switch cfg.GetStoreDriver() {
	case config.StoreDriverMemory, "":
		return NewMemoryStore(), nil
	case config.StoreDriverSQLite:
		return NewSQLiteStore(cfg.GetStorePath())
	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		return NewRedisStore(client, cfg.GetRedisPrefix()), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.GetStoreDriver())
	}
}
