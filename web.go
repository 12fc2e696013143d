/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/completar/games/completar"
	"github.com/Seednode/completar/presentations"
	"github.com/Seednode/completar/uploads"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

const (
	logDate    string        = `2006-01-02T15:04:05.000-07:00`
	timeout    time.Duration = 10 * time.Second
	publicPath string        = "/public"
)

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' https: data:; media-src 'self' https:")

	if cfg.scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

func serveVersion(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)

		written, err := w.Write([]byte("completar v" + releaseVersion + "\n"))
		if err != nil {
			reportError(errs, err)

			return
		}

		logf(cfg, "SERVE: Version page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// services are the collaborators the routes depend on.
type services struct {
	store   presentations.Store
	media   uploads.Uploader
	engine  *completar.Obfuscator
	metrics *metrics
}

func newRouter(cfg *Config, svc *services, errs chan<- error) http.Handler {
	mux := httprouter.New()

	if cfg.corsOrigin != "" {
		mux.GlobalOPTIONS = serveCORSPreflight()
	}

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		logrus.WithField("panic", i).WithField("path", r.URL.Path).Error("ERROR: handler panicked")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)

		_, _ = io.WriteString(w, newPage("Server Error", "An error has occurred. Please try again."))
	}

	m := svc.metrics

	mux.GET(cfg.prefix+"/", serveHomePage(cfg, errs))

	mux.GET(cfg.prefix+"/assets/*asset", serveAssets(cfg, errs))

	mux.GET(cfg.prefix+"/healthz", serveHealthCheck(cfg, errs))

	mux.GET(cfg.prefix+"/robots.txt", serveRobots(cfg, errs))

	mux.GET(cfg.prefix+"/version", serveVersion(cfg, errs))

	if cfg.metrics {
		mux.Handler("GET", cfg.prefix+"/metrics", m.handler())
	}

	if cfg.profile {
		registerProfileHandlers(cfg, mux)
	}

	if disk, ok := svc.media.(*uploads.DiskUploader); ok {
		mux.GET(cfg.prefix+publicPath+"/*filepath", servePublicFiles(disk.Dir()))
	}

	registerPresentar(cfg, "/presentar", mux, svc, errs)

	registerCompletar(cfg, "/completar", mux, svc, errs)

	registerJugar(cfg, "/jugar", mux, svc, errs)

	return withCORS(cfg, mux)
}

func ServePage(ctx context.Context, cfg *Config, args []string) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
	}

	logf(cfg, "START: completar v%s", releaseVersion)

	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	store, closers, err := openStore(ctx, cfg)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	if err != nil {
		return err
	}

	media, err := openUploader(ctx, cfg)
	if err != nil {
		return err
	}

	errs := make(chan error, 64)
	done := make(chan struct{})
	defer close(done)
	go drainErrors(errs, done)

	svc := &services{
		store:   store,
		media:   media,
		engine:  completar.New(nil),
		metrics: newMetrics(),
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           newRouter(cfg, svc, errs),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       cfg.requestTimeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      cfg.requestTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		logf(cfg, "SERVE: Listening on %s://%s%s/", cfg.scheme(), srv.Addr, cfg.prefix)
		if cfg.tlsKey != "" && cfg.tlsCert != "" {
			serveErr <- srv.ListenAndServeTLS(cfg.tlsCert, cfg.tlsKey)
		} else {
			serveErr <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}

	logf(cfg, "STOP: completar v%s", releaseVersion)

	return nil
}
