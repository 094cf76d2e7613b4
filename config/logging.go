package config

import (
	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/logging"
)

// setLogger builds the logger for env and replaces the zap globals with it
func setLogger(env string) (*zap.Logger, error) {
	l, err := logging.New(env)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
