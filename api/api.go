package api

import (
	"io"
	"net/http"
)

// HealthCheckHandler answers liveness probes
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}

// PreflightHandler answers CORS preflight requests on any route
func PreflightHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusOK)
}
