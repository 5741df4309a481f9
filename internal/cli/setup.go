package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/glyphforge/glyphforge/pkg/config"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/forge"
	"github.com/glyphforge/glyphforge/pkg/gen"
	"github.com/glyphforge/glyphforge/pkg/registry"
	"github.com/glyphforge/glyphforge/pkg/source"
	"github.com/glyphforge/glyphforge/pkg/validate"
)

// loadConfig reads the config file named by path, or the defaults when path
// is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newForge assembles a forge from configuration: the default generator
// registry, a validator chain with configured thresholds, and a directory
// source store rooted at the asset path.
func newForge(ctx context.Context, cfg config.Config) *forge.Forge {
	chain := validate.DefaultChain(cfg.Validation.MinDensity, cfg.Validation.MaxDensity)
	store := source.NewDir(cfg.Paths.AssetRoot)
	return forge.New(nil, chain, store, loggerFromContext(ctx))
}

// openRegistry opens the configured registry backend. The returned registry
// must be closed by the caller.
func openRegistry(ctx context.Context, cfg config.Config) (registry.Registry, error) {
	switch cfg.Registry.Backend {
	case config.BackendFile:
		return registry.NewFileRegistry(cfg.Registry.Path)
	case config.BackendRedis:
		return registry.NewRedisRegistry(ctx, registry.RedisConfig{
			Addr:     cfg.Registry.RedisAddr,
			Password: cfg.Registry.RedisPassword,
			DB:       cfg.Registry.RedisDB,
		})
	case config.BackendMongo:
		return registry.NewMongoRegistry(ctx, registry.MongoConfig{
			URI:        cfg.Registry.MongoURI,
			Database:   cfg.Registry.MongoDatabase,
			Collection: cfg.Registry.MongoCollection,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown registry backend %q", cfg.Registry.Backend)
	}
}

// parseSizes parses a comma-separated list of WxH dimension specs,
// e.g. "32x48,64x96".
func parseSizes(s string) ([]gen.Dimensions, error) {
	var out []gen.Dimensions
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, h, ok := strings.Cut(strings.ToLower(part), "x")
		if !ok {
			return nil, fmt.Errorf("invalid size %q (expected WxH)", part)
		}
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("invalid width in %q", part)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("invalid height in %q", part)
		}
		out = append(out, gen.Dimensions{Width: width, Height: height})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return out, nil
}

// parseOverrides parses repeated "Validator Name=reason" flags into an
// override map. The reason is mandatory: overrides are audited.
func parseOverrides(specs []string) (map[string]validate.Override, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]validate.Override, len(specs))
	for _, spec := range specs {
		name, reason, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		reason = strings.TrimSpace(reason)
		if !ok || name == "" || reason == "" {
			return nil, fmt.Errorf("invalid override %q (expected \"Validator Name=reason\")", spec)
		}
		out[name] = validate.Override{Overridden: true, Reason: reason}
	}
	return out, nil
}
