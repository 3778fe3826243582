package middlewares

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nerva-io/nerva/types"
)

// TokenAuth verifies an X-API-Key header of the form "client:secret"
// against bcrypt hashes configured per client.
type TokenAuth struct {
	logger types.Logger
	hashes map[string]string
}

func NewTokenAuth(logger types.Logger, hashes map[string]string) *TokenAuth {
	return &TokenAuth{
		logger: logger,
		hashes: hashes,
	}
}

func (t *TokenAuth) Resolve(_ context.Context) (types.MiddlewareFunc, error) {
	if len(t.hashes) == 0 {
		return nil, errors.New("token auth middleware configured without any client tokens")
	}

	for client, hash := range t.hashes {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, errors.Wrapf(err, "invalid bcrypt hash for client %q", client)
		}
	}

	return func(rctx *fasthttp.RequestCtx, next types.NextFunc) error {
		key := string(rctx.Request.Header.Peek("X-API-Key"))

		client, secret, ok := strings.Cut(key, ":")
		if !ok {
			t.reject(rctx)
			return nil
		}

		hash, exists := t.hashes[client]
		if !exists {
			t.reject(rctx)
			return nil
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
			t.logger.Warn("Token auth rejected",
				zap.String("client", client),
				zap.ByteString("path", rctx.Path()),
			)
			t.reject(rctx)
			return nil
		}

		rctx.SetUserValue("auth_client", client)
		next()
		return nil
	}, nil
}

func (t *TokenAuth) reject(rctx *fasthttp.RequestCtx) {
	rctx.Error("Unauthorized", fasthttp.StatusUnauthorized)
}
