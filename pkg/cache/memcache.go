package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// maxRelativeExpiry is the longest expiry memcached reads as a number of
// seconds; larger values are taken as a Unix timestamp.
const maxRelativeExpiry = 30 * 24 * time.Hour

// MemcacheOptions configures a [MemcacheCache].
type MemcacheOptions struct {
	// Servers are "host:port" addresses; keys are spread across them.
	Servers []string
	Prefix  string
	// Timeout bounds each socket operation. Zero uses the client default.
	Timeout time.Duration
}

// MemcacheCache stores entries in memcached. Like [RedisCache] it suits
// several server instances sharing rendered reports.
type MemcacheCache struct {
	client *memcache.Client
	prefix string
}

// NewMemcacheCache creates a cache over opts.Servers. Connections are made
// lazily.
func NewMemcacheCache(opts MemcacheOptions) *MemcacheCache {
	client := memcache.New(opts.Servers...)
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	return &MemcacheCache{client: client, prefix: opts.Prefix}
}

// Ping checks that every server answers.
func (c *MemcacheCache) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Ping()
}

func (c *MemcacheCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var item *memcache.Item
	err := RetryWithBackoff(ctx, func() (err error) {
		item, err = c.client.Get(c.prefix + key)
		return classifyMemcache(err)
	})
	switch {
	case errors.Is(err, memcache.ErrCacheMiss):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return item.Value, true, nil
}

func (c *MemcacheCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	item := &memcache.Item{Key: c.prefix + key, Value: data, Expiration: expiration(ttl, time.Now())}
	return RetryWithBackoff(ctx, func() error {
		return classifyMemcache(c.client.Set(item))
	})
}

func (c *MemcacheCache) Delete(ctx context.Context, key string) error {
	err := RetryWithBackoff(ctx, func() error {
		return classifyMemcache(c.client.Delete(c.prefix + key))
	})
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (c *MemcacheCache) Close() error { return c.client.Close() }

// expiration converts ttl to memcached's expiry field: 0 never expires,
// up to 30 days is relative seconds, beyond that an absolute Unix time.
func expiration(ttl time.Duration, now time.Time) int32 {
	switch {
	case ttl <= 0:
		return 0
	case ttl > maxRelativeExpiry:
		return int32(now.Add(ttl).Unix())
	case ttl < time.Second:
		return 1
	}
	return int32(ttl / time.Second)
}

func classifyMemcache(err error) error {
	if err == nil || errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	var netErr net.Error
	var connTimeout *memcache.ConnectTimeoutError
	if errors.As(err, &netErr) || errors.As(err, &connTimeout) {
		return Retryable(err)
	}
	return err
}

var _ Cache = (*MemcacheCache)(nil)
