package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/linesmerrill/medireminder-api/config"
)

// ObjectUploader is the part of manager.Uploader used here
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3 uploads objects to one bucket
type S3 struct {
	bucket   string
	uploader ObjectUploader
}

// NewS3 loads the AWS configuration from the environment and returns an uploader for
// conf.BucketName. A custom endpoint switches to path-style addressing.
func NewS3(ctx context.Context, conf *config.Config) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if conf.Region != "" {
		opts = append(opts, awsconfig.WithRegion(conf.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	o := s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
	}
	if conf.S3Endpoint != "" {
		o.BaseEndpoint = aws.String(conf.S3Endpoint)
		o.UsePathStyle = true
	}
	return NewS3WithUploader(conf.BucketName, manager.NewUploader(s3.New(o))), nil
}

// NewS3WithUploader returns an S3 uploader over an existing object uploader
func NewS3WithUploader(bucket string, uploader ObjectUploader) *S3 {
	return &S3{bucket: bucket, uploader: uploader}
}

// Upload puts body into the bucket and returns the object location
func (s *S3) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	out, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return "", err
	}
	return out.Location, nil
}
