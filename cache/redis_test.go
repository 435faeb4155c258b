package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"zinescan/config"
)

func setupTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	return NewRedis(client, config.CacheConfig{TTLSeconds: 60})
}

func TestRedisCacheBasicOperations(t *testing.T) {
	c := setupTestRedis(t)
	defer c.Close()

	ctx := context.Background()

	t.Run("Set_and_Get", func(t *testing.T) {
		c.Set(ctx, testLink())

		link, found := c.Get(ctx, "I1", "L1")
		if !found {
			t.Fatal("link not found in cache")
		}
		if link.URL != "https://example.com/a" || link.Label != "Bandcamp" {
			t.Errorf("cached link = %+v", link)
		}
	})

	t.Run("Get_Miss", func(t *testing.T) {
		if _, found := c.Get(ctx, "I1", "nope"); found {
			t.Error("expected miss for unknown link")
		}
	})

	t.Run("Get_WrongIssue", func(t *testing.T) {
		if _, found := c.Get(ctx, "I2", "L1"); found {
			t.Error("mismatched issue id must miss")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		c.Set(ctx, testLink())
		c.Delete(ctx, "I1", "L1")

		if _, found := c.Get(ctx, "I1", "L1"); found {
			t.Error("link should be gone after delete")
		}
	})
}
