package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisPrefix = "calendar:"
	redisGenKey = redisPrefix + "gen"
	redisTTL    = 10 * time.Minute
)

// RedisCache é compartilhado entre instâncias da API. InvalidateAll só
// incrementa a geração; entradas antigas ficam órfãs e expiram pelo TTL.
// Set grava na geração lida pelo Get, então um preenchimento que cruzou
// uma invalidação cai numa chave órfã.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: redisTTL}
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, redisGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func entryKey(gen int64, key Key) string {
	return fmt.Sprintf("%s%d:%s", redisPrefix, gen, key)
}

func (c *RedisCache) Get(ctx context.Context, key Key) (Lookup, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return Lookup{}, fmt.Errorf("calendar cache generation: %w", err)
	}

	val, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Epoch: gen}, nil
	}
	if err != nil {
		return Lookup{}, fmt.Errorf("calendar cache get: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(val, &events); err != nil {
		// entrada corrompida conta como miss
		return Lookup{Epoch: gen}, nil
	}
	return Lookup{Events: events, Hit: true, Epoch: gen}, nil
}

func (c *RedisCache) Set(ctx context.Context, key Key, epoch int64, events []Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(epoch, key), data, c.ttl).Err()
}

// Invalidate apaga só a chave da geração atual. Um preenchimento da mesma
// chave em curso ainda pode regravá-la; mutações usam InvalidateAll.
func (c *RedisCache) Invalidate(ctx context.Context, key Key) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return fmt.Errorf("calendar cache generation: %w", err)
	}
	return c.client.Del(ctx, entryKey(gen, key)).Err()
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	return c.client.Incr(ctx, redisGenKey).Err()
}

var _ Cache = (*RedisCache)(nil)
