package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"zinescan/config"
	"zinescan/model"
)

// RedisCache is the shared implementation for multi-instance deployments,
// so a link resolved on one instance is warm on all of them.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ LinkCache = (*RedisCache)(nil)

// NewRedisClient dials redis and verifies connectivity.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info().Str("address", cfg.Address).Msg("Connected to Redis")
	return rdb, nil
}

// NewRedis wraps an already-dialed client as a LinkCache.
func NewRedis(client *redis.Client, cfg config.CacheConfig) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

func (c *RedisCache) Get(ctx context.Context, issueID, linkID string) (*model.Link, bool) {
	data, err := c.client.Get(ctx, "link:"+cacheKey(issueID, linkID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("Link cache read failed")
		return nil, false
	}

	var link model.Link
	if err := json.Unmarshal(data, &link); err != nil {
		log.Error().Err(err).Msg("Failed to decode cached link")
		return nil, false
	}
	return &link, true
}

func (c *RedisCache) Set(ctx context.Context, link *model.Link) {
	data, err := json.Marshal(link)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode link for cache")
		return
	}
	if err := c.client.Set(ctx, "link:"+cacheKey(link.IssueID, link.ID), data, c.ttl).Err(); err != nil {
		log.Error().Err(err).Msg("Link cache write failed")
	}
}

func (c *RedisCache) Delete(ctx context.Context, issueID, linkID string) {
	if err := c.client.Del(ctx, "link:"+cacheKey(issueID, linkID)).Err(); err != nil {
		log.Error().Err(err).Msg("Link cache delete failed")
	}
}

func (c *RedisCache) Close() {
	if err := c.client.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis connection")
	}
}
