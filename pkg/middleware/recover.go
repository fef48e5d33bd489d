package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/smartshop/webapp/pkg/logger"
)

// Recovery catches panics in downstream handlers, logs the stack trace and
// serves a plain 500 page. Mount it before the route handlers so it wraps
// everything below.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
