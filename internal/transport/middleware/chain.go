package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain folds mws into one Middleware. The first entry is outermost and sees
// the request first. Nil entries stand for middleware switched off by config
// and are skipped.
func Chain(mws ...Middleware) Middleware {
	active := make([]Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			active = append(active, mw)
		}
	}
	return func(next http.Handler) http.Handler {
		for i := len(active) - 1; i >= 0; i-- {
			next = active[i](next)
		}
		return next
	}
}
