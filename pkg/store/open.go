package store

import (
	"context"
	"fmt"
	"strings"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the backend named by o.Backend. An empty name means file.
// On error the returned Store is nil.
func Open(ctx context.Context, o Options) (Store, error) {
	switch strings.ToLower(o.Backend) {
	case BackendFile, "":
		if o.Dir == "" {
			return nil, fmt.Errorf("file store: directory is required")
		}
		s, err := NewFileStore(o.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		s, err := NewRedisStore(ctx, o.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := NewMongoStore(ctx, o.Mongo)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendNone:
		return NewNullStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q (want one of %s)", o.Backend, strings.Join(Backends(), ", "))
}

// Backends returns the accepted backend names.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}
}
