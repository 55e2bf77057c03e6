package utils

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

const undefinedRoute = "undefined"

// GetRoutePattern returns the chi route pattern matching r, like "/api/airdrop", so metrics are not labeled with raw
// paths. It works before the router has resolved the request too, which is the case in top-level middlewares.
func GetRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return undefinedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}

	matchCtx := chi.NewRouteContext()
	if rctx.Routes == nil || !rctx.Routes.Match(matchCtx, r.Method, path) {
		return undefinedRoute
	}
	return matchCtx.RoutePattern()
}

// UnwrapInterfaceToPointer returns i as a *T, or nil when it holds another type.
func UnwrapInterfaceToPointer[T any](i interface{}) *T {
	if t, ok := i.(*T); ok {
		return t
	}
	return nil
}

// IsEmpty reports whether v is the zero value of its type. A nil interface is empty.
func IsEmpty[T any](v T) bool {
	valueType := reflect.TypeOf(v)
	if valueType == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
