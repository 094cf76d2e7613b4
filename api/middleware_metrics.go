package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SlowRequestThreshold is the duration above which a request is logged as slow
const SlowRequestThreshold = time.Second

// MetricsMiddleware records the duration and status of every routed request into mc
func MetricsMiddleware(mc *MetricsCollector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			trace := &RequestTrace{
				Method:    r.Method,
				Route:     route,
				StartTime: time.Now(),
			}
			rt := &requestTraceContext{trace: trace}
			r = r.WithContext(context.WithValue(r.Context(), requestTraceContextKey{}, rt))

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			rt.mu.Lock()
			trace.TotalDuration = time.Since(trace.StartTime)
			trace.Status = rw.statusCode
			finished := *trace
			rt.mu.Unlock()
			mc.RecordTrace(finished)

			if finished.TotalDuration > SlowRequestThreshold {
				zap.S().Warnw("Slow request detected",
					"method", r.Method,
					"route", route,
					"duration", finished.TotalDuration,
					"status", rw.statusCode,
					"dbQueries", finished.DBQueries,
					"dbTime", finished.DBTotalTime,
				)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
