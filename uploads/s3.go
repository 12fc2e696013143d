/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// S3Config holds configuration for the S3 uploader.
type S3Config struct {
	Bucket    string // S3 bucket name
	Prefix    string // Key prefix for all objects
	Region    string // AWS region (default: us-east-1)
	Endpoint  string // Custom endpoint for S3-compatible storage (MinIO, etc.)
	AccessKey string // optional, default credential chain when empty
	SecretKey string // optional, default credential chain when empty
	PublicURL string // Base URL objects are served from; derived when empty
}

// ObjectAPI is the subset of *s3.Client the uploader calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Uploader struct {
	client ObjectAPI
	config S3Config
	logger logrus.FieldLogger
}

// NewS3Uploader builds an S3 client from cfg.
func NewS3Uploader(ctx context.Context, cfg S3Config, logger logrus.FieldLogger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket is required")
	}

	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	logger.WithFields(logrus.Fields{
		"bucket":   cfg.Bucket,
		"prefix":   cfg.Prefix,
		"region":   cfg.Region,
		"endpoint": cfg.Endpoint,
	}).Info("S3 uploader initialized")

	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg, logger), nil
}

func NewS3UploaderWithClient(client ObjectAPI, cfg S3Config, logger logrus.FieldLogger) *S3Uploader {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	return &S3Uploader{client: client, config: cfg, logger: logger}
}

func (u *S3Uploader) fullKey(name string) string {
	if u.config.Prefix == "" {
		return name
	}

	return strings.Trim(u.config.Prefix, "/") + "/" + name
}

// objectURL mirrors the addressing style the client was configured with.
func (u *S3Uploader) objectURL(key string) string {
	switch {
	case u.config.PublicURL != "":
		return strings.TrimSuffix(u.config.PublicURL, "/") + "/" + key
	case u.config.Endpoint != "":
		return strings.TrimSuffix(u.config.Endpoint, "/") + "/" + u.config.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.config.Bucket, u.config.Region, key)
	}
}

func (u *S3Uploader) Upload(ctx context.Context, kind Kind, filename, contentType string, body io.Reader, size int64) (string, error) {
	name, err := objectName(kind, filename)
	if err != nil {
		return "", err
	}

	key := u.fullKey(name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.config.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	u.logger.WithFields(logrus.Fields{
		"bucket": u.config.Bucket,
		"key":    key,
		"bytes":  size,
	}).Info("Uploaded file to S3")

	return u.objectURL(key), nil
}

func (u *S3Uploader) Remove(ctx context.Context, location string) error {
	base := strings.TrimSuffix(u.objectURL(""), "/")
	if u.config.Prefix != "" {
		base += "/" + strings.Trim(u.config.Prefix, "/")
	}

	name, err := nameFromLocation(base, location)
	if err != nil {
		return err
	}

	key := u.fullKey(name)

	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.config.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	u.logger.WithFields(logrus.Fields{
		"bucket": u.config.Bucket,
		"key":    key,
	}).Info("Deleted file from S3")

	return nil
}
