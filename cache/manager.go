package cache

import (
	"context"

	"github.com/nerva-io/nerva/types"
)

func NewCacheManager(ctx context.Context, config *types.CacheConfig, logger types.Logger) (types.CacheManager, error) {
	if config == nil || !config.Enabled {
		return nil, types.ErrCacheIsDisabled
	}

	switch config.Type {
	case "", "memory":
		return NewMemoryCache(ctx, config, logger), nil
	case "redis":
		return NewRedisCache(ctx, config, logger)
	default:
		return nil, types.Errorf(types.ErrCacheTypeUnknown, "%s", config.Type)
	}
}
