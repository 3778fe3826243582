package types

import (
	"context"
	"time"
)

type CacheManager interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
	Ping(ctx context.Context) error
	Close() error
}
