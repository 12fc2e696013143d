/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Seednode/completar/presentations"
	"github.com/Seednode/completar/uploads"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

// Uploads above this size are spooled to temporary files while parsing.
const multipartMemory = 32 << 20

var errBadUpload = errors.New("bad upload")

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}

type presentationForm struct {
	name   string
	titles []string
	image  *multipart.FileHeader
	videos []*multipart.FileHeader
}

func parsePresentationForm(r *http.Request) (*presentationForm, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}

	form := r.MultipartForm

	f := &presentationForm{
		name:   r.FormValue("nombre"),
		titles: slices.Concat(form.Value["titulos"], form.Value["titulos[]"]),
		videos: form.File["video"],
	}

	if f.name == "" {
		return nil, fmt.Errorf("%w: nombre is required", errBadUpload)
	}

	images := form.File["imagen"]
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: imagen is required", errBadUpload)
	}
	f.image = images[0]

	if len(f.titles) != len(f.videos) {
		return nil, fmt.Errorf("%w: got %d titulos for %d videos", errBadUpload, len(f.titles), len(f.videos))
	}

	return f, nil
}

func uploadFile(r *http.Request, svc *services, kind uploads.Kind, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	location, err := svc.media.Upload(r.Context(), kind, fh.Filename, fh.Header.Get("Content-Type"), file, fh.Size)
	if err != nil {
		return "", err
	}

	svc.metrics.uploadBytes.WithLabelValues(string(kind)).Add(float64(fh.Size))

	return location, nil
}

// discardUploads removes media stored for a presentation that was never saved.
// The request context may already be cancelled, so removal gets its own.
func discardUploads(svc *services, locations []string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, location := range locations {
		if err := svc.media.Remove(ctx, location); err != nil {
			logrus.WithError(err).WithField("location", location).Warn("Failed to remove orphaned upload")
		}
	}
}

func serveCreatePresentation(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxUploadSize)

		form, err := parsePresentationForm(r)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, err.Error(), errs)

			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		p := &presentations.Presentation{
			Name:   form.name,
			Titles: make([]presentations.Title, 0, len(form.titles)),
		}

		total := form.image.Size
		stored := make([]string, 0, len(form.videos)+1)

		p.Image, err = uploadFile(r, svc, uploads.Images, form.image)
		if err != nil {
			serveError(cfg, w, http.StatusInternalServerError, "failed to store imagen: "+err.Error(), errs)

			return
		}
		stored = append(stored, p.Image)

		for i, fh := range form.videos {
			video, err := uploadFile(r, svc, uploads.Videos, fh)
			if err != nil {
				discardUploads(svc, stored)
				serveError(cfg, w, http.StatusInternalServerError, "failed to store video: "+err.Error(), errs)

				return
			}
			stored = append(stored, video)

			p.Titles = append(p.Titles, presentations.Title{Title: form.titles[i], Video: video})
			total += fh.Size
		}

		if err := svc.store.Save(r.Context(), p); err != nil {
			discardUploads(svc, stored)
			serveError(cfg, w, http.StatusInternalServerError, err.Error(), errs)

			return
		}

		logf(cfg, "UPLOAD: Presentation %q with %d videos (%s) from %s in %s",
			p.Name,
			len(p.Titles),
			humanReadableSize(total),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)

		serveJSON(cfg, w, http.StatusCreated, p, errs)
	}
}

func serveListPresentations(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		list, err := svc.store.List(r.Context())
		if err != nil {
			serveError(cfg, w, http.StatusInternalServerError, "Error al obtener los datos de presentación", errs)
			reportError(errs, err)

			return
		}

		serveJSON(cfg, w, http.StatusOK, list, errs)
	}
}

// requestScheme is the scheme the client used, trusting X-Forwarded-Proto
// only when it names http or https.
func requestScheme(r *http.Request) string {
	proto, _, _ := strings.Cut(r.Header.Get("X-Forwarded-Proto"), ",")

	switch proto = strings.ToLower(strings.TrimSpace(proto)); proto {
	case "http", "https":
		return proto
	}

	if r.TLS != nil {
		return "https"
	}

	return "http"
}

// serveQR renders a PNG QR code pointing at the play page for a presentation.
func serveQR(cfg *Config, svc *services, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		name := ps.ByName("nombre")

		if _, ok := lookupPresentation(cfg, svc, w, r, name, errs); !ok {
			return
		}

		target := requestScheme(r) + "://" + r.Host + cfg.prefix + "/jugar/" + url.PathEscape(name)

		const qrSize = 320
		png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			reportError(errs, err)
		}
	}
}

func registerPresentar(cfg *Config, path string, mux *httprouter.Router, svc *services, errs chan<- error) {
	m := svc.metrics

	mux.POST(cfg.prefix+path, m.instrument(path, serveCreatePresentation(cfg, svc, errs)))

	mux.GET(cfg.prefix+path, m.instrument(path, serveListPresentations(cfg, svc, errs)))

	mux.GET(cfg.prefix+path+"/:nombre/qr", m.instrument(path+"/:nombre/qr", serveQR(cfg, svc, errs)))
}
