package types

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound       = errors.New("config not found")
	ErrConfigInvalidPath    = errors.New("config invalid path")
	ErrConfigParseFailed    = errors.New("config parse failed")
	ErrConfigValidateFailed = errors.New("config validate failed")
)

var (
	ErrMiddlewareInvalidType = errors.New("middleware invalid type")
	ErrMiddlewareNotResolved = errors.New("middleware not resolved")
	ErrMiddlewareListEmpty   = errors.New("middleware list empty")
	ErrRouteListEmpty        = errors.New("route list empty")
	ErrMiddlewareResolveNil  = errors.New("middleware resolved to nil handler")
	ErrAuthTokenInvalid      = errors.New("auth token invalid")
)

var (
	ErrControllerNotFound   = errors.New("controller not found")
	ErrRequestMethodUnknown = errors.New("request method unknown")
	ErrHandlerIsNil         = errors.New("handler is nil")
)

var (
	ErrCacheKeyEmpty         = errors.New("cache key empty")
	ErrCacheConnectionFailed = errors.New("cache connection failed")
	ErrCacheTypeUnknown      = errors.New("cache type unknown")
	ErrCacheIsDisabled       = errors.New("cache manager is disabled")
)

var (
	ErrLogFileIsEmpty     = errors.New("log file is empty")
	ErrLogFileWrongFormat = errors.New("log file wrong format")
	ErrLoggerTypeUnknown  = errors.New("logger type unknown")
)

func Errorf(baseErr error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", baseErr, fmt.Sprintf(format, args...))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func NewErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

func IsError(err, target error) bool {
	return errors.Is(err, target)
}
