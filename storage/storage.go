// Package storage uploads medicament images to an object store and returns their public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/config"
)

// ErrNotConfigured is returned by the uploader used when no object store is configured
var ErrNotConfigured = errors.New("object store is not configured")

// Uploader stores body under key and returns the location of the stored object
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ImageKey returns the object key of an uploaded image
func ImageKey(now time.Time, fileName string) string {
	return fmt.Sprintf("images/%d_%s", now.UnixMilli(), fileName)
}

// New returns the uploader selected by conf.ObjectStore
func New(ctx context.Context, conf *config.Config) (Uploader, error) {
	switch conf.ObjectStore {
	case config.ObjectStoreS3, "":
		if conf.BucketName == "" {
			zap.S().Warn("AWS_S3_BUCKET_NAME is not set, image uploads are disabled")
			return unconfigured{}, nil
		}
		return NewS3(ctx, conf)
	case config.ObjectStoreCloudinary:
		return NewCloudinary(conf.CloudinaryURL)
	}
	return nil, fmt.Errorf("unknown object store %q", conf.ObjectStore)
}

type unconfigured struct{}

func (unconfigured) Upload(context.Context, string, []byte, string) (string, error) {
	return "", ErrNotConfigured
}
