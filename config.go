/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	storageDisk = "disk"
	storageS3   = "s3"
)

type Config struct {
	bind           string
	corsOrigin     string
	idleTimeout    time.Duration
	maxUploadSize  int64
	metrics        bool
	port           int
	prefix         string
	profile        bool
	requestTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	databaseURL string

	cacheTTL      time.Duration
	redisAddr     string
	redisDB       int
	redisPassword string

	storage     string
	uploadDir   string
	s3AccessKey string
	s3Bucket    string
	s3Endpoint  string
	s3Prefix    string
	s3PublicURL string
	s3Region    string
	s3SecretKey string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxUploadSize < 1 {
		return fmt.Errorf("invalid max upload size (must be positive): %d", c.maxUploadSize)
	}
	switch c.storage {
	case storageDisk:
		if c.uploadDir == "" {
			return errors.New("--upload-dir is required for disk storage")
		}
	case storageS3:
		if c.s3Bucket == "" {
			return errors.New("--s3-bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid storage backend (must be %q or %q): %q", storageDisk, storageS3, c.storage)
	}
	if (c.s3AccessKey == "") != (c.s3SecretKey == "") {
		return errors.New("both --s3-access-key and --s3-secret-key must be provided together")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadEnv reads KEY=value pairs into the environment without overriding
// variables that are already set.
func loadEnv(files ...string) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logrus.WithError(err).Warnf("Failed to load %s", file)
		}
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COMPLETAR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "completar",
		Short:         "Serves presentations and the fill-in-the-missing-letters game built on their names.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			setupLogging(cfg)
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: COMPLETAR_BIND)")
	fs.StringVar(&cfg.corsOrigin, "cors-origin", "*", "comma-separated origins allowed to make cross-origin requests; empty disables CORS (env: COMPLETAR_CORS_ORIGIN)")
	fs.DurationVar(&cfg.cacheTTL, "cache-ttl", 5*time.Minute, "how long presentations stay in the redis cache (env: COMPLETAR_CACHE_TTL)")
	fs.StringVar(&cfg.databaseURL, "database-url", "", "postgres connection string; presentations are kept in memory if unset (env: COMPLETAR_DATABASE_URL)")
	fs.DurationVar(&cfg.idleTimeout, "idle-timeout", 10*time.Minute, "time before idle websocket players are disconnected (env: COMPLETAR_IDLE_TIMEOUT)")
	fs.Int64Var(&cfg.maxUploadSize, "max-upload-size", 512<<20, "maximum size in bytes of a presentation upload (env: COMPLETAR_MAX_UPLOAD_SIZE)")
	fs.BoolVar(&cfg.metrics, "metrics", false, "expose prometheus metrics at /metrics (env: COMPLETAR_METRICS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: COMPLETAR_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: COMPLETAR_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: COMPLETAR_PROFILE)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "", "redis address used to cache presentation lookups (env: COMPLETAR_REDIS_ADDR)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "redis database number (env: COMPLETAR_REDIS_DB)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: COMPLETAR_REDIS_PASSWORD)")
	fs.DurationVar(&cfg.requestTimeout, "request-timeout", 5*time.Minute, "maximum time to read a request or write a response (env: COMPLETAR_REQUEST_TIMEOUT)")
	fs.StringVar(&cfg.s3AccessKey, "s3-access-key", "", "s3 access key; default credential chain if unset (env: COMPLETAR_S3_ACCESS_KEY)")
	fs.StringVar(&cfg.s3Bucket, "s3-bucket", "", "s3 bucket for uploaded media (env: COMPLETAR_S3_BUCKET)")
	fs.StringVar(&cfg.s3Endpoint, "s3-endpoint", "", "custom endpoint for s3-compatible storage (env: COMPLETAR_S3_ENDPOINT)")
	fs.StringVar(&cfg.s3Prefix, "s3-prefix", "", "key prefix for uploaded media (env: COMPLETAR_S3_PREFIX)")
	fs.StringVar(&cfg.s3PublicURL, "s3-public-url", "", "base URL uploaded objects are served from (env: COMPLETAR_S3_PUBLIC_URL)")
	fs.StringVar(&cfg.s3Region, "s3-region", "us-east-1", "s3 region (env: COMPLETAR_S3_REGION)")
	fs.StringVar(&cfg.s3SecretKey, "s3-secret-key", "", "s3 secret key (env: COMPLETAR_S3_SECRET_KEY)")
	fs.StringVar(&cfg.storage, "storage", storageDisk, "where uploaded media is stored: disk or s3 (env: COMPLETAR_STORAGE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: COMPLETAR_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: COMPLETAR_TLS_KEY)")
	fs.StringVar(&cfg.uploadDir, "upload-dir", "public", "directory for uploaded media when using disk storage (env: COMPLETAR_UPLOAD_DIR)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: COMPLETAR_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: COMPLETAR_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("completar v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
