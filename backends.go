/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"io"

	"github.com/Seednode/completar/presentations"
	"github.com/Seednode/completar/uploads"
	"github.com/sirupsen/logrus"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore picks postgres when a database URL is configured, memory
// otherwise, and fronts either with redis when an address is given.
func openStore(ctx context.Context, cfg *Config) (presentations.Store, []io.Closer, error) {
	var (
		store   presentations.Store
		closers []io.Closer
	)

	if cfg.databaseURL != "" {
		db, err := presentations.OpenPostgres(ctx, presentations.DefaultPostgresConfig(cfg.databaseURL), logrus.StandardLogger())
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, db)

		pg := presentations.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			return nil, closers, err
		}

		logf(cfg, "STORE: Using postgres")
		store = pg
	} else {
		logf(cfg, "STORE: Using in-memory store")
		store = presentations.NewMemoryStore()
	}

	if cfg.redisAddr != "" {
		client, err := presentations.NewRedisClient(ctx, presentations.RedisConfig{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		if err != nil {
			return nil, closers, err
		}
		closers = append(closers, closerFunc(client.Close))

		logf(cfg, "STORE: Caching lookups in redis at %s for %s", cfg.redisAddr, cfg.cacheTTL)
		store = presentations.NewCachedStore(store, client, cfg.cacheTTL, logrus.StandardLogger())
	}

	return store, closers, nil
}

func openUploader(ctx context.Context, cfg *Config) (uploads.Uploader, error) {
	if cfg.storage == storageS3 {
		return uploads.NewS3Uploader(ctx, uploads.S3Config{
			Bucket:    cfg.s3Bucket,
			Prefix:    cfg.s3Prefix,
			Region:    cfg.s3Region,
			Endpoint:  cfg.s3Endpoint,
			AccessKey: cfg.s3AccessKey,
			SecretKey: cfg.s3SecretKey,
			PublicURL: cfg.s3PublicURL,
		}, logrus.StandardLogger())
	}

	logf(cfg, "STORE: Writing uploads to %s", cfg.uploadDir)

	return uploads.NewDiskUploader(cfg.uploadDir, cfg.prefix+publicPath, logrus.StandardLogger())
}
