// Package redis stores each owner's tasks as one JSON array under <prefix>:<owner>.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"task-planner/internal/task/repository"
	"task-planner/pkg/log"
)

// DefaultKeyPrefix matches the storage key the browser planner used.
const DefaultKeyPrefix = "6c75-planner-tasks"

// maxTxRetries bounds optimistic-lock retries when another writer touches the key.
const maxTxRetries = 10

type implRepository struct {
	rdb    *redis.Client
	prefix string
	l      log.Logger
}

// Options configures the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, opt Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}
	return rdb, nil
}

// New wraps an open client. An empty prefix falls back to DefaultKeyPrefix.
func New(rdb *redis.Client, prefix string, l log.Logger) repository.Repository {
	if rdb == nil {
		panic("task/repository/redis: client is required")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &implRepository{rdb: rdb, prefix: prefix, l: l}
}

func (r *implRepository) key(owner string) string {
	return r.prefix + ":" + owner
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/redis.%s", method)
}

func (r *implRepository) Close() error {
	return r.rdb.Close()
}
