package handlers

import (
	"net/http"
	"time"

	"github.com/linesmerrill/medireminder-api/api"
)

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		var dbAvg int64
		if route.Count > 0 {
			dbAvg = (route.DBTotalTime / time.Duration(route.Count)).Milliseconds()
		}
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"dbQueries":   route.DBQueries,
			"dbAvgTime":   dbAvg,
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// MetricsHandler serves the request metrics
type MetricsHandler struct {
	Metrics *api.MetricsCollector
}

// GetMetricsHandler returns the summary and the per route aggregates, slowest first
func (m MetricsHandler) GetMetricsHandler(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, newEnvelope(http.StatusOK, map[string]interface{}{
		"summary": m.Metrics.GetSummary(),
		"routes":  formatRouteMetrics(m.Metrics.GetRouteMetrics()),
	}))
}
