package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

const (
	keyNamespace = "sheets"
	scanCount    = 100
)

// TableCache stores raw worksheet snapshots for a short time.
type TableCache interface {
	Get(ctx context.Context, key string) (sheets.RawTable, bool, error)
	Set(ctx context.Context, key string, table sheets.RawTable, ttl time.Duration) error
	Flush(ctx context.Context, prefix string) error
}

// Key identifies one worksheet snapshot by document, title and declared header.
func Key(document string, schema sheets.Schema) string {
	return fmt.Sprintf("%s%s:%s", Prefix(document), schema.Title, schema.Fingerprint())
}

// Prefix covers every snapshot of a document.
func Prefix(document string) string {
	return fmt.Sprintf("%s:%s:", keyNamespace, document)
}

// RedisTableCache keeps snapshots as JSON strings in redis.
type RedisTableCache struct {
	client *redis.Client
}

// NewRedisTableCache wraps a redis client.
func NewRedisTableCache(client *redis.Client) *RedisTableCache {
	return &RedisTableCache{client: client}
}

func (c *RedisTableCache) Get(ctx context.Context, key string) (sheets.RawTable, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return sheets.RawTable{}, false, nil
	}
	if err != nil {
		return sheets.RawTable{}, false, err
	}

	var table sheets.RawTable
	if err := json.Unmarshal(payload, &table); err != nil {
		return sheets.RawTable{}, false, fmt.Errorf("decode cached table: %w", err)
	}
	return table, true, nil
}

func (c *RedisTableCache) Set(ctx context.Context, key string, table sheets.RawTable, ttl time.Duration) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode cached table: %w", err)
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// Flush deletes every key starting with prefix.
func (c *RedisTableCache) Flush(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
