package config

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetStoreDriver() string {
	return GetEnv("STORE_DRIVER", StoreDriverMemory)
}

func (Store) GetStorePath() string {
	return GetEnv("STORE_PATH", "./data/session.db")
}

func (Store) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Store) GetRedisPrefix() string {
	return GetEnv("REDIS_PREFIX", "session:")
}
