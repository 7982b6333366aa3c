// Package config loads lingraph service configuration from TOML.
//
// Configuration is organized in sections mirroring the subsystems:
// [server] for the HTTP API, [cache] and [cache.redis] for the blob
// cache, [store] and [store.mongo] for the run archive, [pipeline] for
// default run options. Every key has a sensible default, so an empty
// file (or no file at all) yields a working local setup: file cache,
// in-memory store, annotation on.
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["https://example.test"]
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lingraph/lingraph/pkg/cache"
	"github.com/lingraph/lingraph/pkg/errors"
)

// Cache backend names accepted in [cache].backend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Store backend names accepted in [store].backend.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Config is the full service configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Pipeline Pipeline `toml:"pipeline"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Cache configures the blob cache.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"` // file backend; empty means the XDG default
	TTL     Duration `toml:"ttl"`
	Redis   Redis    `toml:"redis"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Store configures the run archive.
type Store struct {
	Backend string `toml:"backend"`
	Mongo   Mongo  `toml:"mongo"`
}

// Mongo holds connection settings for the mongo store backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Pipeline sets defaults applied to every run.
type Pipeline struct {
	GraphID  uint64 `toml:"graph_id"`
	SourceID uint64 `toml:"source_id"`
	Annotate bool   `toml:"annotate"`
}

// Duration wraps time.Duration so TOML values like "12h" decode.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Cache: Cache{
			Backend: CacheBackendFile,
			TTL:     Duration{cache.TTLBlob},
			Redis:   Redis{Addr: "localhost:6379"},
		},
		Store: Store{
			Backend: StoreBackendMemory,
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "lingraph",
				Collection: "graphs",
			},
		},
		Pipeline: Pipeline{
			Annotate: true,
		},
	}
}

// Load reads the TOML file at path on top of [Default] and validates
// the result. Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints. It returns a CONFIG_INVALID
// error naming the offending key.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "server.addr cannot be empty")
	}

	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendNone:
	case CacheBackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "cache.redis.addr cannot be empty")
		}
	default:
		return errors.New(errors.ErrCodeConfigInvalid,
			"unknown cache backend: %q (want file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "cache.ttl must be positive")
	}

	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "store.mongo.uri cannot be empty")
		}
		if c.Store.Mongo.Database == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "store.mongo.database cannot be empty")
		}
		if c.Store.Mongo.Collection == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "store.mongo.collection cannot be empty")
		}
	default:
		return errors.New(errors.ErrCodeConfigInvalid,
			"unknown store backend: %q (want memory or mongo)", c.Store.Backend)
	}

	return nil
}
