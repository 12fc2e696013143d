/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DiskUploader writes files below dir; they are served from baseURL.
type DiskUploader struct {
	dir     string
	baseURL string
	logger  logrus.FieldLogger
}

func NewDiskUploader(dir, baseURL string, logger logrus.FieldLogger) (*DiskUploader, error) {
	for _, kind := range []Kind{Images, Videos} {
		if err := os.MkdirAll(filepath.Join(dir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	return &DiskUploader{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

func (d *DiskUploader) Dir() string {
	return d.dir
}

func (d *DiskUploader) Upload(ctx context.Context, kind Kind, filename, _ string, body io.Reader, _ int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := objectName(kind, filename)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.dir, filepath.FromSlash(name))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	written, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	d.logger.WithFields(logrus.Fields{
		"path":  path,
		"bytes": written,
	}).Debug("Stored upload on disk")

	return d.baseURL + "/" + name, nil
}

func (d *DiskUploader) Remove(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := nameFromLocation(d.baseURL, location)
	if err != nil {
		return err
	}

	path := filepath.Join(d.dir, filepath.FromSlash(name))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	d.logger.WithField("path", path).Debug("Removed upload from disk")

	return nil
}
