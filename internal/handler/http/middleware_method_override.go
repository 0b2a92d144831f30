package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// withMethodOverride lets HTML forms, which can only POST, reach the PUT and
// DELETE account routes through a hidden "_method" field. It must run inside
// the router it overrides for, since chi routes on the route context method.
func withMethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			switch method := strings.ToUpper(r.PostFormValue("_method")); method {
			case http.MethodPut, http.MethodDelete:
				r.Method = method
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					rctx.RouteMethod = method
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
