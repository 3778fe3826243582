package middlewares

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nerva-io/nerva/types"
	"github.com/nerva-io/nerva/utils"
)

type LoggingConfig struct {
	LogLevel   string `json:"log_level"`
	LogHeaders bool   `json:"log_headers"`
}

// Logging logs every request passing through the routes it is bound to.
type Logging struct {
	logger types.Logger
	config *LoggingConfig
}

func NewLogging(logger types.Logger, params map[string]interface{}) *Logging {
	config := &LoggingConfig{
		LogLevel:   "info",
		LogHeaders: false,
	}

	if params != nil {
		if err := utils.UnmarshalConfig(params, config); err != nil {
			logger.Error("Failed to unmarshal logging middleware config", zap.Error(err))
		}
	}

	return &Logging{
		logger: logger,
		config: config,
	}
}

func (l *Logging) Resolve(_ context.Context) (types.MiddlewareFunc, error) {
	return func(rctx *fasthttp.RequestCtx, next types.NextFunc) error {
		start := time.Now()

		next()

		fields := []zap.Field{
			zap.ByteString("method", rctx.Method()),
			zap.ByteString("path", rctx.Path()),
			zap.Int("status", rctx.Response.StatusCode()),
			zap.Duration("duration", time.Since(start)),
		}

		if query := rctx.QueryArgs().QueryString(); len(query) > 0 {
			fields = append(fields, zap.ByteString("query", query))
		}

		if l.config.LogHeaders {
			headers := make(map[string]string, 8)
			rctx.Request.Header.VisitAll(func(key, value []byte) {
				headers[string(key)] = string(value)
			})
			fields = append(fields, zap.Any("headers", headers))
		}

		switch {
		case rctx.Response.StatusCode() >= 500:
			l.logger.Error("Request completed", fields...)
		case rctx.Response.StatusCode() >= 400:
			l.logger.Warn("Request completed", fields...)
		case l.config.LogLevel == "debug":
			l.logger.Debug("Request completed", fields...)
		default:
			l.logger.Info("Request completed", fields...)
		}

		return nil
	}, nil
}
