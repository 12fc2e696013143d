/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func serveJSON(cfg *Config, w http.ResponseWriter, status int, v any, errs chan<- error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		reportError(errs, err)
	}
}

func serveMessage(cfg *Config, w http.ResponseWriter, status int, message string, errs chan<- error) {
	serveJSON(cfg, w, status, messageResponse{Message: message}, errs)
}

func serveError(cfg *Config, w http.ResponseWriter, status int, message string, errs chan<- error) {
	serveJSON(cfg, w, status, errorResponse{Error: message}, errs)
}
