package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-resumegen/pkg/persistence"
	"github.com/goliatone/go-resumegen/pkg/store/bolt"
	"github.com/goliatone/go-resumegen/pkg/store/memory"
	"github.com/goliatone/go-resumegen/pkg/store/postgres"
	"github.com/goliatone/go-resumegen/pkg/store/redis"
)

// Drivers.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Settings selects and configures a driver.
type Settings struct {
	Driver        string `yaml:"driver"`
	BoltPath      string `yaml:"bolt_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
	Postgres      string `yaml:"postgres_dsn"`
}

// Handle is an opened store plus the function releasing it.
type Handle struct {
	persistence.Store
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open connects the configured driver.
func Open(ctx context.Context, s Settings) (*Handle, error) {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case "", DriverMemory:
		return &Handle{Store: memory.New(), Closer: nopCloser{}}, nil
	case DriverBolt:
		db, err := bolt.Open(s.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Handle{Store: db, Closer: db}, nil
	case DriverRedis:
		rdb, err := redis.Open(ctx, redis.Options{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
			Prefix:   s.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return &Handle{Store: rdb, Closer: rdb}, nil
	case DriverPostgres:
		pg, err := postgres.Open(ctx, s.Postgres)
		if err != nil {
			return nil, err
		}
		return &Handle{Store: pg, Closer: pg}, nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", s.Driver)
	}
}
