/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"slices"
	"strings"
)

const (
	corsMethods = "GET, POST, OPTIONS"
	corsHeaders = "Content-Type, Authorization"
)

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when cross-origin access is not permitted.
func (c *Config) allowedOrigin(origin string) string {
	if c.corsOrigin == "" {
		return ""
	}
	if c.corsOrigin == "*" {
		return "*"
	}
	if origin == "" {
		return ""
	}

	allowed := strings.Split(c.corsOrigin, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}
	if slices.Contains(allowed, origin) {
		return origin
	}

	return ""
}

func setCORSHeaders(cfg *Config, w http.ResponseWriter, r *http.Request) {
	if cfg.corsOrigin != "*" {
		w.Header().Add("Vary", "Origin")
	}

	origin := cfg.allowedOrigin(r.Header.Get("Origin"))
	if origin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", corsMethods)
	w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
}

// withCORS decorates every response, including 404s and files, with the
// CORS headers for the request's origin.
func withCORS(cfg *Config, next http.Handler) http.Handler {
	if cfg.corsOrigin == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(cfg, w, r)
		next.ServeHTTP(w, r)
	})
}

// serveCORSPreflight answers OPTIONS for every registered path.
func serveCORSPreflight() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
