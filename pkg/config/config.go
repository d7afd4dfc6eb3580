// Package config loads gridboard settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gridboard/config.toml (falling back to
// ~/.config/gridboard/config.toml). Every key is optional; missing keys keep
// their defaults.
//
//	[grid]
//	cell_size = 150
//	gap = 12
//	min_cols = 4
//	max_cols = 12
//	container_width = 1280
//	policy = "push"
//
//	[store]
//	backend = "file"        # file, memory, redis, mongo, none
//	dir = "/var/lib/gridboard"
//	redis_addr = "localhost:6379"
//	prefix = "team-a:"
//
//	[[kinds]]
//	name = "sparkline"
//	min_w = 1
//	min_h = 1
//	max_w = 3
//	max_h = 1
//	default_w = 2
//	default_h = 1
//	resizable = true
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/store"
)

const appName = "gridboard"

// Defaults not covered by the grid package.
const (
	DefaultContainerWidth = 1280
	DefaultServerAddr     = ":8080"
	DefaultBoard          = "default"
)

// Config is the full set of settings.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Store  StoreConfig  `toml:"store"`
	Kinds  []KindConfig `toml:"kinds"`
	Server ServerConfig `toml:"server"`
}

// GridConfig holds the grid geometry and conflict policy.
type GridConfig struct {
	CellSize       int    `toml:"cell_size"`
	Gap            int    `toml:"gap"`
	MinCols        int    `toml:"min_cols"`
	MaxCols        int    `toml:"max_cols"`
	ContainerWidth int    `toml:"container_width"`
	Policy         string `toml:"policy"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Prefix          string `toml:"prefix"`
}

// KindConfig declares an extra widget kind or overrides a built-in one.
type KindConfig struct {
	Name      string `toml:"name"`
	MinW      int    `toml:"min_w"`
	MinH      int    `toml:"min_h"`
	MaxW      int    `toml:"max_w"`
	MaxH      int    `toml:"max_h"`
	DefaultW  int    `toml:"default_w"`
	DefaultH  int    `toml:"default_h"`
	Resizable bool   `toml:"resizable"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	g := grid.DefaultConfig()
	return Config{
		Grid: GridConfig{
			CellSize:       g.CellSize,
			Gap:            g.Gap,
			MinCols:        g.MinCols,
			MaxCols:        g.MaxCols,
			ContainerWidth: DefaultContainerWidth,
			Policy:         grid.DefaultPolicy,
		},
		Store:  StoreConfig{Backend: store.BackendFile},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// =============================================================================
// Loading
// =============================================================================

// DefaultPath returns the config file location using the XDG standard.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultStoreDir returns the file store directory using the XDG standard
// (~/.local/share/gridboard/layouts).
func DefaultStoreDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "layouts"), nil
}

// Load reads path, returning the defaults if the file does not exist.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file, which must exist.
func LoadFile(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(string(data))
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return b.String(), nil
}

// =============================================================================
// Validation and Conversion
// =============================================================================

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.GridGeometry().Validate(); err != nil {
		return err
	}
	if c.Grid.ContainerWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.container_width cannot be negative")
	}
	if _, err := grid.ParsePolicy(c.Grid.Policy); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "grid.policy")
	}
	if _, err := c.Registry(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "kinds")
	}
	if err := c.Store.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

func (s StoreConfig) validate() error {
	switch strings.ToLower(s.Backend) {
	case store.BackendFile, store.BackendMemory, store.BackendNone, "":
	case store.BackendRedis:
		if s.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.redis_addr is required for the redis backend")
		}
	case store.BackendMongo:
		if s.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store.backend %q (want one of %s)",
			s.Backend, strings.Join(store.Backends(), ", "))
	}
	if s.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "store.redis_db cannot be negative")
	}
	return nil
}

// GridGeometry returns the grid package configuration.
func (c Config) GridGeometry() grid.Config {
	return grid.Config{
		CellSize: c.Grid.CellSize,
		Gap:      c.Grid.Gap,
		MinCols:  c.Grid.MinCols,
		MaxCols:  c.Grid.MaxCols,
	}
}

// InitialCols returns the column count for the configured container width.
func (c Config) InitialCols() int {
	return grid.ComputeColumns(c.Grid.ContainerWidth, c.GridGeometry())
}

// Policy returns the configured conflict policy.
func (c Config) Policy() (grid.Policy, error) {
	return grid.ParsePolicy(c.Grid.Policy)
}

// Registry returns the built-in kinds with the configured kinds applied on
// top.
func (c Config) Registry() (*grid.Registry, error) {
	r := grid.DefaultRegistry()
	for _, k := range c.Kinds {
		if err := r.Register(k.Kind()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Kind converts the declaration to a grid kind.
func (k KindConfig) Kind() grid.Kind {
	return grid.Kind{
		Name:      k.Name,
		MinW:      k.MinW,
		MinH:      k.MinH,
		MaxW:      k.MaxW,
		MaxH:      k.MaxH,
		DefaultW:  k.DefaultW,
		DefaultH:  k.DefaultH,
		Resizable: k.Resizable,
	}
}

// StoreOptions returns the options for [store.Open]. An empty file store
// directory resolves to [DefaultStoreDir].
func (c Config) StoreOptions() (store.Options, error) {
	dir := c.Store.Dir
	if dir == "" && (c.Store.Backend == "" || strings.EqualFold(c.Store.Backend, store.BackendFile)) {
		d, err := DefaultStoreDir()
		if err != nil {
			return store.Options{}, err
		}
		dir = d
	}
	return store.Options{
		Backend: c.Store.Backend,
		Dir:     dir,
		Redis: store.RedisOptions{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
		},
		Mongo: store.MongoOptions{
			URI:        c.Store.MongoURI,
			Database:   c.Store.MongoDatabase,
			Collection: c.Store.MongoCollection,
		},
	}, nil
}

// Keyer returns the key builder, scoped by the configured prefix.
func (c Config) Keyer() store.Keyer {
	if c.Store.Prefix == "" {
		return store.NewDefaultKeyer()
	}
	return store.NewScopedKeyer(store.NewDefaultKeyer(), c.Store.Prefix)
}
