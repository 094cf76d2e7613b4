package logging

import "go.uber.org/zap"

// New creates a new zap logger for the given environment. Unknown environments get the
// production logger.
func New(environment string) (*zap.Logger, error) {
	switch environment {
	case "local":
		return zap.NewExample(), nil
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}
