package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTestCache connects to REDIS_URL under a prefix unique to the test, or
// skips when no server is configured.
func redisTestCache(t *testing.T) (*RedisCache, *redis.Client) {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL(%q) error: %v", url, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("ping %s: %v", url, err)
	}

	prefix := fmt.Sprintf("seqgram-test:%s:%d:", t.Name(), time.Now().UnixNano())
	c := NewRedisCacheFromClient(client, prefix)
	t.Cleanup(func() {
		_ = c.Clear(context.Background())
		_ = c.Close()
	})
	return c, client
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://localhost:6379")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("err = %v, want ErrInvalidURL", err)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	shortRetries(t)

	_, err := NewRedisCache(context.Background(), "redis://127.0.0.1:1/0?max_retries=-1&dial_timeout=100ms")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewRedisCacheFromClient(client, "tenant:")
	defer c.Close()

	if got := c.key("output:abc"); got != "tenant:output:abc" {
		t.Errorf("key = %q", got)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, client := redisTestCache(t)
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "output:a"); err != nil || hit {
		t.Fatalf("Get() on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "output:a", []byte("diagram"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "output:a")
	if err != nil || !hit || !bytes.Equal(data, []byte("diagram")) {
		t.Fatalf("Get() = %q, hit %v, err %v", data, hit, err)
	}

	ttl, err := client.TTL(ctx, c.key("output:a")).Result()
	if err != nil {
		t.Fatalf("TTL() error: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}

	if err := c.Delete(ctx, "output:a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "output:a"); hit {
		t.Error("Get() after Delete() = hit")
	}
}

func TestRedisCacheClear(t *testing.T) {
	c, client := redisTestCache(t)
	ctx := context.Background()

	// More keys than one SCAN/DEL batch.
	const n = 250
	for i := 0; i < n; i++ {
		if err := c.Set(ctx, fmt.Sprintf("geometry:%d", i), []byte("g"), time.Minute); err != nil {
			t.Fatalf("Set(%d) error: %v", i, err)
		}
	}

	outside := strings.TrimSuffix(c.prefix, ":") + "-outside"
	if err := client.Set(ctx, outside, "keep", time.Minute).Err(); err != nil {
		t.Fatalf("Set outside key: %v", err)
	}
	t.Cleanup(func() { client.Del(context.Background(), outside) })

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	for i := 0; i < n; i++ {
		if _, hit, _ := c.Get(ctx, fmt.Sprintf("geometry:%d", i)); hit {
			t.Fatalf("key %d survived Clear()", i)
		}
	}
	if got, err := client.Get(ctx, outside).Result(); err != nil || got != "keep" {
		t.Errorf("key outside the prefix = %q, err %v; should survive Clear()", got, err)
	}
}
