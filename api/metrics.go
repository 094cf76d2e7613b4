package api

import (
	"context"
	"sort"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	Method        string
	Route         string
	Status        int
	StartTime     time.Time
	TotalDuration time.Duration
	DBQueries     int
	DBTotalTime   time.Duration
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"-"`
	AvgTime     time.Duration `json:"-"`
	MinTime     time.Duration `json:"-"`
	MaxTime     time.Duration `json:"-"`
	DBQueries   int64         `json:"dbQueries"`
	DBTotalTime time.Duration `json:"-"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsCollector collects and aggregates request metrics per route
type MetricsCollector struct {
	mu            sync.RWMutex
	routeMetrics  map[string]*RouteMetrics
	windowStart   time.Time
	totalRequests int64
	totalErrors   int64
	totalDBTime   time.Duration
}

// NewMetricsCollector returns an empty collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		routeMetrics: make(map[string]*RouteMetrics),
		windowStart:  time.Now(),
	}
}

// RecordTrace folds one finished request into the route aggregates
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	routeKey := trace.Method + " " + trace.Route
	metrics, exists := mc.routeMetrics[routeKey]
	if !exists {
		metrics = &RouteMetrics{
			Method:  trace.Method,
			Path:    trace.Route,
			MinTime: trace.TotalDuration,
		}
		mc.routeMetrics[routeKey] = metrics
	}

	metrics.Count++
	metrics.TotalTime += trace.TotalDuration
	metrics.AvgTime = metrics.TotalTime / time.Duration(metrics.Count)
	metrics.LastRequest = trace.StartTime
	if trace.TotalDuration < metrics.MinTime {
		metrics.MinTime = trace.TotalDuration
	}
	if trace.TotalDuration > metrics.MaxTime {
		metrics.MaxTime = trace.TotalDuration
	}
	if trace.Status >= 400 {
		metrics.ErrorCount++
		mc.totalErrors++
	}
	metrics.DBQueries += int64(trace.DBQueries)
	metrics.DBTotalTime += trace.DBTotalTime

	mc.totalRequests++
	mc.totalDBTime += trace.DBTotalTime
}

// GetRouteMetrics returns a copy of every route aggregate, slowest average first
func (mc *MetricsCollector) GetRouteMetrics() []RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]RouteMetrics, 0, len(mc.routeMetrics))
	for _, m := range mc.routeMetrics {
		routes = append(routes, *m)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].AvgTime != routes[j].AvgTime {
			return routes[i].AvgTime > routes[j].AvgTime
		}
		return routes[i].Method+routes[i].Path < routes[j].Method+routes[j].Path
	})
	return routes
}

// GetSummary returns overall summary metrics
func (mc *MetricsCollector) GetSummary() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var errorRate float64
	if mc.totalRequests > 0 {
		errorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}
	return map[string]interface{}{
		"totalRequests": mc.totalRequests,
		"totalErrors":   mc.totalErrors,
		"errorRate":     errorRate,
		"totalDBTime":   mc.totalDBTime.String(),
		"windowStart":   mc.windowStart,
		"routeCount":    len(mc.routeMetrics),
	}
}

type requestTraceContextKey struct{}

type requestTraceContext struct {
	mu    sync.Mutex
	trace *RequestTrace
}

// WithRequestTrace adds request trace to context
func WithRequestTrace(ctx context.Context, trace *RequestTrace) context.Context {
	return context.WithValue(ctx, requestTraceContextKey{}, &requestTraceContext{trace: trace})
}

// RecordQuery adds one storage call to the trace carried by ctx. Without a trace it does nothing.
func RecordQuery(ctx context.Context, duration time.Duration) {
	rt, ok := ctx.Value(requestTraceContextKey{}).(*requestTraceContext)
	if !ok || rt.trace == nil {
		return
	}
	rt.mu.Lock()
	rt.trace.DBQueries++
	rt.trace.DBTotalTime += duration
	rt.mu.Unlock()
}
