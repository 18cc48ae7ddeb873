package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartdoc/pkg/cache"
	"github.com/matzehuels/chartdoc/pkg/store"
)

// =============================================================================
// Configuration
// =============================================================================

// Config is the TOML configuration for the CLI and server.
//
// Example config.toml:
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	driver = "sqlite"
//	path = "chartdoc.db"
//
//	[cache]
//	driver = "file"
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Driver     string `toml:"driver"` // memory, sqlite, or mongo
	Path       string `toml:"path"`   // sqlite database file
	URI        string `toml:"uri"`    // mongo connection string
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects and configures the shape cache backend.
type CacheConfig struct {
	Driver   string `toml:"driver"` // file, redis, or none
	Dir      string `toml:"dir"`    // file cache directory
	Addr     string `toml:"addr"`   // redis address
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultConfig returns the configuration used when no config file exists:
// an in-memory store and a file cache under the XDG cache directory.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Driver: "memory"},
		Cache:  CacheConfig{Driver: "file"},
	}
}

// LoadConfig reads the TOML config at path. An empty path falls back to the
// default location, and a missing file there is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// =============================================================================
// Backend Factories
// =============================================================================

// OpenStore opens the document store named by cfg.Driver.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = appName + ".db"
		}
		return store.NewSQLiteStore(ctx, path)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.URI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store driver: %q (must be memory, sqlite, or mongo)", cfg.Driver)
	}
}

// OpenCache opens the shape cache named by cfg.Driver. A file cache that
// cannot determine its directory degrades to a null cache rather than failing.
func OpenCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Driver {
	case "none":
		return cache.NewNullCache(), nil
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	default:
		return nil, fmt.Errorf("unknown cache driver: %q (must be file, redis, or none)", cfg.Driver)
	}
}
