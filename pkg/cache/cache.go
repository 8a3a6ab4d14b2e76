// Package cache stores rendered reports between runs.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Four
// backends are provided:
//   - [FileCache] for the CLI, under the XDG cache directory
//   - [RedisCache] for shared deployments of the HTTP server
//   - [MemcacheCache], the same over memcached
//   - [NullCache] when caching is disabled
//
// Keys are produced by a [Keyer] so that every consumer agrees on their
// layout. Reports are keyed on the fingerprint of the snapshot they were
// rendered from, so a changed snapshot never serves a stale tree.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Default time-to-live values for cached entries.
const (
	// TTLReport is the lifetime of a rendered VPC tree.
	TTLReport = 24 * time.Hour

	// TTLVPCList is the lifetime of a rendered VPC listing.
	TTLVPCList = 24 * time.Hour
)

// Cache is the storage interface used by the report pipeline.
type Cache interface {
	// Get returns the value for key. The boolean reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// ReportKey returns the key of the VPC tree rendered from a snapshot.
	ReportKey(fingerprint string, opts ReportKeyOpts) string

	// VPCListKey returns the key of the VPC listing rendered from a snapshot.
	VPCListKey(fingerprint string) string
}

// ReportKeyOpts holds the inputs that change a rendered report.
type ReportKeyOpts struct {
	VpcID string `json:"vpc_id"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey returns "report:<sha256>" over the fingerprint and options.
func (k *DefaultKeyer) ReportKey(fingerprint string, opts ReportKeyOpts) string {
	return hashKey("report", fingerprint, opts)
}

// VPCListKey returns "vpcs:<sha256>" over the fingerprint.
func (k *DefaultKeyer) VPCListKey(fingerprint string) string {
	return hashKey("vpcs", fingerprint)
}

var _ Keyer = (*DefaultKeyer)(nil)

// hashKey returns "<kind>:<hex sha256 of the JSON-encoded parts>".
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing; every Get is a miss. It backs --no-cache and the
// "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)           { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
