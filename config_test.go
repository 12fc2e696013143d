/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		port:          8080,
		maxUploadSize: 1024,
		storage:       storageDisk,
		uploadDir:     "public",
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().validate())

	cases := map[string]func(c *Config){
		"port":        func(c *Config) { c.port = 0 },
		"tls pair":    func(c *Config) { c.tlsCert = "cert.pem" },
		"upload size": func(c *Config) { c.maxUploadSize = 0 },
		"storage":     func(c *Config) { c.storage = "ftp" },
		"upload dir":  func(c *Config) { c.uploadDir = "" },
		"s3 bucket":   func(c *Config) { c.storage = storageS3 },
		"s3 keys":     func(c *Config) { c.s3AccessKey = "AKIA" },
	}

	for name, mutate := range cases {
		c := validConfig()
		mutate(c)
		assert.Error(t, c.validate(), name)
	}
}

func TestConfigScheme(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "http", c.scheme())

	c.tlsCert, c.tlsKey = "cert.pem", "key.pem"
	assert.Equal(t, "https", c.scheme())
}

func TestFlagsReadEnvironment(t *testing.T) {
	t.Setenv("COMPLETAR_PORT", "9090")
	t.Setenv("COMPLETAR_CACHE_TTL", "30s")
	t.Setenv("COMPLETAR_STORAGE", "s3")
	t.Setenv("COMPLETAR_S3_BUCKET", "sinvoz")

	cfg := &Config{}
	_ = newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 30*time.Second, cfg.cacheTTL)
	assert.Equal(t, storageS3, cfg.storage)
	assert.Equal(t, "sinvoz", cfg.s3Bucket)
	assert.Equal(t, "us-east-1", cfg.s3Region)
	assert.NoError(t, cfg.validate())
}

func TestHumanReadableSize(t *testing.T) {
	assert.Equal(t, "999 B", humanReadableSize(999))
	assert.Equal(t, "1.5 kB", humanReadableSize(1500))
	assert.Equal(t, "2.0 MB", humanReadableSize(2_000_000))
}
