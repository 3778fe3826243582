package middleware

import (
	"github.com/nerva-io/nerva/types"
)

// registration resolves the router entry point for a request method. The
// method set is closed; an unknown value here means an orchestration bug.
func registration(router types.MethodRouter, method types.RequestMethod) (func(string, types.RouteHandler), error) {
	switch method {
	case types.MethodAll:
		return router.All, nil
	case types.MethodGet:
		return router.Get, nil
	case types.MethodPost:
		return router.Post, nil
	case types.MethodPut:
		return router.Put, nil
	case types.MethodPatch:
		return router.Patch, nil
	case types.MethodDelete:
		return router.Delete, nil
	case types.MethodHead:
		return router.Head, nil
	case types.MethodOptions:
		return router.Options, nil
	}

	return nil, types.Errorf(types.ErrRequestMethodUnknown, "%d", method)
}
