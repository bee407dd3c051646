package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"fairway-booking/internal/pkg/config"
	"fairway-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

var (
	ErrMiss = errs.New("cache miss")
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to redis")
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// Stats reports the live keys in the cache namespace. Key names are
// reported without the namespace prefix.
type Stats struct {
	Size int64    `json:"size"`
	Keys []string `json:"keys"`
}

// Cache is a JSON value cache on Redis. Keys are namespaced with a prefix so
// pattern invalidation never touches foreign keys in a shared instance.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, cfg config.CacheConfig) *Cache {
	return &Cache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}

// Get unmarshals the cached value for key into dest. ErrMiss is returned for
// absent or expired keys.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return errs.Wrap(err, "failed to get cached value")
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return errs.Wrap(err, "failed to unmarshal cached value")
	}
	return nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "failed to marshal value for cache")
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to set cached value")
	}
	return nil
}

// InvalidatePattern deletes every key whose name contains pattern. Uses SCAN
// rather than KEYS so a large keyspace never blocks the server.
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) (int64, error) {
	match := fmt.Sprintf("%s:*%s*", c.prefix, pattern)
	return c.deleteMatching(ctx, match)
}

// Clear drops the whole namespace.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	return c.deleteMatching(ctx, c.prefix+":*")
}

func (c *Cache) deleteMatching(ctx context.Context, match string) (int64, error) {
	var deleted int64
	iter := c.client.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, errs.Wrap(err, "failed to delete cached key")
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, errs.Wrap(err, "failed to scan cache keys")
	}
	return deleted, nil
}

func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Keys: []string{}}

	iter := c.client.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		stats.Keys = append(stats.Keys, strings.TrimPrefix(iter.Val(), c.prefix+":"))
	}
	if err := iter.Err(); err != nil {
		return stats, errs.Wrap(err, "failed to scan cache keys")
	}

	sort.Strings(stats.Keys)
	stats.Size = int64(len(stats.Keys))
	return stats, nil
}
