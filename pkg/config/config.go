// Package config loads and validates the GlyphForge configuration file.
//
// Configuration is a TOML document supplying validator thresholds, the asset
// root for morph sources, the export directory, and the registry backend.
// Every field has a sensible default so a missing file yields a fully usable
// configuration; Load applies defaults and validates in one pass, following
// the same validate-and-set-defaults idiom as the forge request options.
//
// # Example
//
//	[validation]
//	min_density = 0.05
//	max_density = 0.12
//
//	[paths]
//	asset_root = "./assets"
//	export_dir = "./out"
//
//	[registry]
//	backend = "file"          # file | redis | mongo
//	path = "./out/registry.jsonl"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// Registry backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Validation Validation `toml:"validation"`
	Paths      Paths      `toml:"paths"`
	Registry   Registry   `toml:"registry"`
	Log        Log        `toml:"log"`
}

// Validation configures the validator chain thresholds.
type Validation struct {
	MinDensity float64 `toml:"min_density"`
	MaxDensity float64 `toml:"max_density"`
}

// Paths configures filesystem collaborators.
type Paths struct {
	AssetRoot string `toml:"asset_root"`
	ExportDir string `toml:"export_dir"`
}

// Registry selects and configures the append-only capsule registry backend.
type Registry struct {
	Backend string `toml:"backend"`

	// File backend
	Path string `toml:"path"`

	// Redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Mongo backend
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Log configures logging output.
type Log struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Validation: Validation{
			MinDensity: 0.05,
			MaxDensity: 0.12,
		},
		Paths: Paths{
			AssetRoot: "assets",
			ExportDir: "out",
		},
		Registry: Registry{
			Backend:         BackendFile,
			Path:            "out/registry.jsonl",
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "glyphforge",
			MongoCollection: "capsules",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a TOML configuration file, applies defaults for unset fields,
// and validates the result. A missing file is not an error: the defaults
// are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields from Default. TOML zero values and
// absent keys are indistinguishable, so explicit zeros fall back too.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Validation.MinDensity == 0 {
		c.Validation.MinDensity = def.Validation.MinDensity
	}
	if c.Validation.MaxDensity == 0 {
		c.Validation.MaxDensity = def.Validation.MaxDensity
	}
	if c.Paths.AssetRoot == "" {
		c.Paths.AssetRoot = def.Paths.AssetRoot
	}
	if c.Paths.ExportDir == "" {
		c.Paths.ExportDir = def.Paths.ExportDir
	}
	if c.Registry.Backend == "" {
		c.Registry.Backend = def.Registry.Backend
	}
	if c.Registry.Path == "" {
		c.Registry.Path = def.Registry.Path
	}
	if c.Registry.RedisAddr == "" {
		c.Registry.RedisAddr = def.Registry.RedisAddr
	}
	if c.Registry.MongoURI == "" {
		c.Registry.MongoURI = def.Registry.MongoURI
	}
	if c.Registry.MongoDatabase == "" {
		c.Registry.MongoDatabase = def.Registry.MongoDatabase
	}
	if c.Registry.MongoCollection == "" {
		c.Registry.MongoCollection = def.Registry.MongoCollection
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Validation.MinDensity < 0 || c.Validation.MinDensity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"min_density must be in [0, 1], got %v", c.Validation.MinDensity)
	}
	if c.Validation.MaxDensity < 0 || c.Validation.MaxDensity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max_density must be in [0, 1], got %v", c.Validation.MaxDensity)
	}
	if c.Validation.MinDensity > c.Validation.MaxDensity {
		return errors.New(errors.ErrCodeInvalidConfig,
			"min_density %v exceeds max_density %v", c.Validation.MinDensity, c.Validation.MaxDensity)
	}

	switch c.Registry.Backend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"registry backend must be one of: file, redis, mongo; got %q", c.Registry.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"log level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}
