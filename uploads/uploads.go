/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package uploads stores presentation media and returns a public URL for it.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind is the folder a file is filed under.
type Kind string

const (
	Images Kind = "imagenes"
	Videos Kind = "videos"
)

func (k Kind) valid() bool {
	return k == Images || k == Videos
}

// ErrForeignLocation is returned by Remove for URLs the uploader never issued.
var ErrForeignLocation = errors.New("location was not issued by this uploader")

// Uploader persists a file and reports where it can be fetched from.
// Remove deletes a file given the location Upload returned for it.
type Uploader interface {
	Upload(ctx context.Context, kind Kind, filename, contentType string, body io.Reader, size int64) (string, error)
	Remove(ctx context.Context, location string) error
}

// nameFromLocation strips base from location and checks the remainder has
// the <kind>/<file> shape objectName produces.
func nameFromLocation(base, location string) (string, error) {
	name, ok := strings.CutPrefix(location, base+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrForeignLocation, location)
	}

	kind, file, ok := strings.Cut(name, "/")
	if !ok || !Kind(kind).valid() || file == "" || strings.ContainsAny(file, `/\`) || file == ".." {
		return "", fmt.Errorf("%w: %s", ErrForeignLocation, location)
	}

	return name, nil
}

// objectName keeps only the extension of the client's filename.
func objectName(kind Kind, filename string) (string, error) {
	if !kind.valid() {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if strings.ContainsAny(ext, `/\`) {
		ext = ""
	}

	return string(kind) + "/" + uuid.NewString() + ext, nil
}
