// Package store provides key/value storage backends for persisted layouts.
//
// A [Store] holds opaque byte blobs (serialized snapshots) under string keys.
// Implementations:
//   - [FileStore]: one file per key under a directory, for the CLI
//   - [MemoryStore]: process-local map, for tests and ephemeral servers
//   - [RedisStore]: Redis, for servers running more than one instance
//   - [MongoStore]: a MongoDB collection
//   - [NullStore]: discards everything (persistence disabled)
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes every key so several
// users or tenants can share one backend.
package store

import (
	"context"
	"time"
)

// Store is the interface every storage backend implements.
type Store interface {
	// Get returns the value stored under key. A missing or expired key is
	// reported as a miss (ok false) with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)
