package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/verichain/verichain/module"
)

// MetricsMiddleware records the duration and status code of every request,
// labelled by route name.
func MetricsMiddleware(restCollector module.RestMetrics) mux.MiddlewareFunc {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			respWriter := newResponseWriter(w)
			handler.ServeHTTP(respWriter, req)

			route := "unknown"
			if current := mux.CurrentRoute(req); current != nil && current.GetName() != "" {
				route = current.GetName()
			}
			restCollector.ObserveHTTPRequestDuration(route, req.Method, respWriter.statusCode, time.Since(start))
		})
	}
}
