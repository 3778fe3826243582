package middlewares

import (
	"bytes"
	"compress/gzip"
	"context"

	"github.com/andybalholm/brotli"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/nerva-io/nerva/types"
	"github.com/nerva-io/nerva/utils"
)

const (
	AlgorithmGzip   = "gzip"
	AlgorithmBrotli = "br"

	defaultCompressionLevel = 6
	defaultThreshold        = 1024
)

type CompressionConfig struct {
	Algorithm string `json:"algorithm"`
	Level     int    `json:"level"`
	Threshold int    `json:"threshold"`
}

// Compression compresses response bodies above a size threshold when the
// client accepts the configured encoding.
type Compression struct {
	logger types.Logger
	config *CompressionConfig
}

func NewCompression(logger types.Logger, params map[string]interface{}) *Compression {
	config := &CompressionConfig{
		Algorithm: AlgorithmBrotli,
		Level:     defaultCompressionLevel,
		Threshold: defaultThreshold,
	}

	if params != nil {
		if err := utils.UnmarshalConfig(params, config); err != nil {
			logger.Error("Failed to unmarshal compression middleware config", zap.Error(err))
		}
	}

	return &Compression{
		logger: logger,
		config: config,
	}
}

func (c *Compression) Resolve(_ context.Context) (types.MiddlewareFunc, error) {
	switch c.config.Algorithm {
	case AlgorithmGzip, AlgorithmBrotli:
	default:
		return nil, types.NewErrorf("unsupported compression algorithm: %s", c.config.Algorithm)
	}

	if c.config.Level < 0 || c.config.Level > 11 {
		return nil, types.NewErrorf("invalid compression level: %d", c.config.Level)
	}

	return func(rctx *fasthttp.RequestCtx, next types.NextFunc) error {
		next()

		body := rctx.Response.Body()
		if len(body) < c.config.Threshold {
			return nil
		}
		if len(rctx.Response.Header.ContentEncoding()) > 0 {
			return nil
		}
		if !bytes.Contains(rctx.Request.Header.Peek("Accept-Encoding"), []byte(c.config.Algorithm)) {
			return nil
		}

		compressed, err := c.compress(body)
		if err != nil {
			return types.WrapError(err, "response compression failed")
		}
		if len(compressed) >= len(body) {
			return nil
		}

		rctx.Response.Header.Set("Content-Encoding", c.config.Algorithm)
		rctx.Response.Header.Add("Vary", "Accept-Encoding")
		rctx.Response.SetBody(compressed)

		return nil
	}, nil
}

func (c *Compression) compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer

	switch c.config.Algorithm {
	case AlgorithmBrotli:
		writer := brotli.NewWriterLevel(&buf, c.config.Level)
		if _, err := writer.Write(body); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
	case AlgorithmGzip:
		level := c.config.Level
		if level > gzip.BestCompression {
			level = gzip.BestCompression
		}
		writer, err := gzip.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, err
		}
		if _, err := writer.Write(body); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
