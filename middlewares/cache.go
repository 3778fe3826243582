package middlewares

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nerva-io/nerva/types"
	"github.com/nerva-io/nerva/utils"
)

type ResponseCacheConfig struct {
	DefaultTTL string `json:"default_ttl"`
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseCache serves GET responses from the cache backend. It is an
// asynchronous factory: Resolve succeeds only once the backend answers a
// ping, so binding waits for the cache to be reachable.
type ResponseCache struct {
	cache  types.CacheManager
	logger types.Logger
	ttl    time.Duration
}

func NewResponseCache(cache types.CacheManager, logger types.Logger, params map[string]interface{}) *ResponseCache {
	config := &ResponseCacheConfig{DefaultTTL: "5m"}

	if params != nil {
		if err := utils.UnmarshalConfig(params, config); err != nil {
			logger.Error("Failed to unmarshal response cache middleware config", zap.Error(err))
		}
	}

	ttl, err := time.ParseDuration(config.DefaultTTL)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ResponseCache{
		cache:  cache,
		logger: logger,
		ttl:    ttl,
	}
}

func (c *ResponseCache) Resolve(ctx context.Context) (types.MiddlewareFunc, error) {
	if c.cache == nil {
		return nil, types.ErrCacheIsDisabled
	}

	if err := c.cache.Ping(ctx); err != nil {
		return nil, types.Errorf(types.ErrCacheConnectionFailed, "%v", err)
	}

	return func(rctx *fasthttp.RequestCtx, next types.NextFunc) error {
		if !rctx.IsGet() {
			next()
			return nil
		}

		key := cacheKey(rctx)

		if raw, hit := c.cache.Get(key); hit {
			var cached cachedResponse
			if err := utils.UnmarshalConfig(raw, &cached); err == nil {
				rctx.SetStatusCode(cached.Status)
				rctx.SetContentType(cached.ContentType)
				rctx.SetBody(cached.Body)
				rctx.Response.Header.Set("X-Cache", "HIT")
				return nil
			}
			c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key))
			_ = c.cache.Delete(key)
		}

		next()

		if rctx.Response.StatusCode() != fasthttp.StatusOK {
			return nil
		}

		body := make([]byte, len(rctx.Response.Body()))
		copy(body, rctx.Response.Body())

		err := c.cache.Set(key, &cachedResponse{
			Status:      rctx.Response.StatusCode(),
			ContentType: string(rctx.Response.Header.ContentType()),
			Body:        body,
		}, c.ttl)
		if err != nil {
			c.logger.Warn("Failed to store response in cache", zap.String("key", key), zap.Error(err))
		}

		return nil
	}, nil
}

func cacheKey(rctx *fasthttp.RequestCtx) string {
	key := string(rctx.Method()) + ":" + string(rctx.Path())
	if query := rctx.QueryArgs().QueryString(); len(query) > 0 {
		key += "?" + string(query)
	}
	return key
}
