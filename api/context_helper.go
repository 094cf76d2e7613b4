package api

import (
	"context"
	"time"
)

// DefaultQueryTimeout is used until SetQueryTimeout is called
const DefaultQueryTimeout = 10 * time.Second

var queryTimeout = DefaultQueryTimeout

// SetQueryTimeout changes the timeout applied by WithQueryTimeout. It is called once at start-up.
func SetQueryTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultQueryTimeout
	}
	queryTimeout = d
}

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, queryTimeout)
}
