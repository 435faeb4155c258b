package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"

	"zinescan/config"
	"zinescan/model"
)

// LinkCache is a read-through cache of resolved links keyed by
// (issueID, linkID). Entries expire on a short TTL; a scan recorded for a
// link deleted within that window is accepted as harmless.
type LinkCache interface {
	Get(ctx context.Context, issueID, linkID string) (*model.Link, bool)
	Set(ctx context.Context, link *model.Link)
	Delete(ctx context.Context, issueID, linkID string)
	Close()
}

func cacheKey(issueID, linkID string) string {
	return issueID + "/" + linkID
}

// MemoryCache is the in-process implementation backed by Ristretto.
type MemoryCache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

var _ LinkCache = (*MemoryCache)(nil)

// NewMemory creates an in-process link cache with the given configuration.
func NewMemory(cfg config.CacheConfig) (*MemoryCache, error) {
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // keys tracked for admission
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Msg("In-process link cache initialized")

	return &MemoryCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

func (c *MemoryCache) Get(_ context.Context, issueID, linkID string) (*model.Link, bool) {
	value, found := c.client.Get(cacheKey(issueID, linkID))
	if !found {
		return nil, false
	}
	link, ok := value.(model.Link)
	if !ok {
		return nil, false
	}
	return &link, true
}

func (c *MemoryCache) Set(_ context.Context, link *model.Link) {
	// Cost is a rough per-entry byte estimate
	c.client.SetWithTTL(cacheKey(link.IssueID, link.ID), *link, 512, c.ttl)
}

func (c *MemoryCache) Delete(_ context.Context, issueID, linkID string) {
	c.client.Del(cacheKey(issueID, linkID))
}

func (c *MemoryCache) Close() {
	c.client.Close()
	log.Info().Msg("Link cache closed")
}

// Wait blocks until buffered writes are applied. Test helper; Ristretto
// applies Sets asynchronously.
func (c *MemoryCache) Wait() {
	c.client.Wait()
}
