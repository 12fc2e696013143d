/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

func setupLogging(cfg *Config) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: logDate,
	})

	if cfg.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	logrus.Infof(format, args...)
}

// drainErrors logs failures reported by handlers until done is closed.
// errs itself stays open: handlers still running after shutdown may report
// into it, and reportError drops what no longer fits.
func drainErrors(errs <-chan error, done <-chan struct{}) {
	for {
		select {
		case err := <-errs:
			logrus.WithError(err).Error("ERROR: request failed")
		case <-done:
			return
		}
	}
}

// reportError never blocks a handler on a full errs channel.
func reportError(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
	}
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="es"><head>`)
	htmlBody.WriteString(`<meta charset="utf-8"><style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
