/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presentations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "completar:presentation:"

// CachedStore reads FindByName through Redis. Cache errors never fail a
// request; they are logged and the wrapped store answers instead.
type CachedStore struct {
	Store

	client goredis.UniversalClient
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewCachedStore(next Store, client goredis.UniversalClient, ttl time.Duration, logger logrus.FieldLogger) *CachedStore {
	return &CachedStore{
		Store:  next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(name string) string {
	return cacheKeyPrefix + name
}

func (c *CachedStore) Save(ctx context.Context, p *Presentation) error {
	if err := c.Store.Save(ctx, p); err != nil {
		return err
	}

	if err := c.client.Del(ctx, cacheKey(p.Name)).Err(); err != nil {
		c.logger.WithError(err).WithField("nombre", p.Name).Warn("Failed to invalidate cached presentation")
	}

	return nil
}

func (c *CachedStore) FindByName(ctx context.Context, name string) (*Presentation, error) {
	data, err := c.client.Get(ctx, cacheKey(name)).Bytes()
	switch {
	case err == nil:
		var p Presentation
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		c.logger.WithField("nombre", name).Warn("Discarding undecodable cached presentation")
	case !errors.Is(err, goredis.Nil):
		c.logger.WithError(err).WithField("nombre", name).Warn("Presentation cache read failed")
	}

	p, err := c.Store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, cacheKey(name), data, c.ttl).Err(); err != nil {
			c.logger.WithError(err).WithField("nombre", name).Warn("Presentation cache write failed")
		}
	}

	return p, nil
}

// RedisConfig selects the cache server.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to addr and verifies it with a PING.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (goredis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
