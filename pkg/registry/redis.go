package registry

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/glyphforge/glyphforge/pkg/errors"
)

// Redis key layout: one string key per capsule for duplicate detection plus
// a list preserving append order.
const (
	redisRecordPrefix = "glyphforge:capsule:"
	redisOrderKey     = "glyphforge:registry"
)

// RedisRegistry implements the registry on Redis for multi-instance
// deployments.
type RedisRegistry struct {
	client *redis.Client
}

// RedisConfig configures a Redis-backed registry.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisRegistry connects to Redis and verifies the connection.
func NewRedisRegistry(ctx context.Context, cfg RedisConfig) (*RedisRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisRegistry{client: client}, nil
}

// Append implements Registry. SetNX provides the atomic duplicate check.
func (r *RedisRegistry) Append(ctx context.Context, rec Record) (bool, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "marshal record")
	}

	ok, err := r.client.SetNX(ctx, redisRecordPrefix+rec.CapsuleID, data, 0).Result()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "append record")
	}
	if !ok {
		return false, nil
	}

	if err := r.client.RPush(ctx, redisOrderKey, data).Err(); err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "push record")
	}
	return true, nil
}

// Has implements Registry.
func (r *RedisRegistry) Has(ctx context.Context, capsuleID string) (bool, error) {
	n, err := r.client.Exists(ctx, redisRecordPrefix+capsuleID).Result()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeRegistryFailed, err, "check record")
	}
	return n > 0, nil
}

// List implements Registry.
func (r *RedisRegistry) List(ctx context.Context) ([]Record, error) {
	lines, err := r.client.LRange(ctx, redisOrderKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryFailed, err, "list records")
	}

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		var rec Record
		if json.Unmarshal([]byte(line), &rec) == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Close implements Registry.
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}

// Ensure RedisRegistry implements Registry.
var _ Registry = (*RedisRegistry)(nil)
