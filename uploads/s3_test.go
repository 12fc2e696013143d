/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input   *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)

	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func TestS3UploaderPutsObject(t *testing.T) {
	fake := &fakeS3{}
	u := NewS3UploaderWithClient(fake, S3Config{Bucket: "sinvoz", Prefix: "/media/", Region: "us-east-1"}, logrus.New())

	url, err := u.Upload(context.Background(), Videos, "intro.MP4", "video/mp4", strings.NewReader("frames"), 6)
	require.NoError(t, err)

	key := aws.ToString(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "media/videos/"), key)
	assert.True(t, strings.HasSuffix(key, ".mp4"), key)
	assert.Equal(t, "sinvoz", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "video/mp4", aws.ToString(fake.input.ContentType))
	assert.Equal(t, int64(6), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "frames", fake.body)
	assert.Equal(t, "https://sinvoz.s3.us-east-1.amazonaws.com/"+key, url)
}

func TestS3UploaderURLs(t *testing.T) {
	fake := &fakeS3{}

	u := NewS3UploaderWithClient(fake, S3Config{Bucket: "b", Endpoint: "http://minio:9000/"}, logrus.New())
	url, err := u.Upload(context.Background(), Images, "a.jpg", "image/jpeg", strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/b/"+aws.ToString(fake.input.Key), url)

	u = NewS3UploaderWithClient(fake, S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, logrus.New())
	url, err = u.Upload(context.Background(), Images, "a.jpg", "image/jpeg", strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+aws.ToString(fake.input.Key), url)
}

func TestS3UploaderWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	u := NewS3UploaderWithClient(&fakeS3{err: boom}, S3Config{Bucket: "b"}, logrus.New())

	_, err := u.Upload(context.Background(), Images, "a.jpg", "", strings.NewReader(""), 0)
	assert.ErrorIs(t, err, boom)
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3Config{}, logrus.New())
	assert.Error(t, err)
}

func TestS3UploaderRemovesUploadedObject(t *testing.T) {
	configs := map[string]S3Config{
		"aws":      {Bucket: "sinvoz", Prefix: "media"},
		"endpoint": {Bucket: "sinvoz", Endpoint: "http://minio:9000"},
		"public":   {Bucket: "sinvoz", Prefix: "/media/", PublicURL: "https://cdn.example.com"},
	}

	for name, cfg := range configs {
		fake := &fakeS3{}
		u := NewS3UploaderWithClient(fake, cfg, logrus.New())

		url, err := u.Upload(context.Background(), Images, "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
		require.NoError(t, err, name)

		require.NoError(t, u.Remove(context.Background(), url), name)
		assert.Equal(t, []string{"sinvoz/" + aws.ToString(fake.input.Key)}, fake.deleted, name)
	}
}

func TestS3UploaderRemoveRejectsForeignURLs(t *testing.T) {
	fake := &fakeS3{}
	u := NewS3UploaderWithClient(fake, S3Config{Bucket: "b", PublicURL: "https://cdn.example.com"}, logrus.New())

	for _, location := range []string{
		"https://elsewhere.example.com/imagenes/a.jpg",
		"https://cdn.example.com/otros/a.jpg",
		"https://cdn.example.com/imagenes/",
	} {
		assert.ErrorIs(t, u.Remove(context.Background(), location), ErrForeignLocation, location)
	}
	assert.Empty(t, fake.deleted)
}
