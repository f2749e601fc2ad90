package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafabene/avantpro-admin/internal/domain/ports"
)

const defaultPrefix = "avantpro:abilities:"

// RedisAbilityCache implementa ports.AbilityCache no Redis.
// Cada usuário tem uma chave com a lista JSON de habilidades e TTL.
type RedisAbilityCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisAbilityCache cria o cache a partir de uma URL redis://
func NewRedisAbilityCache(ctx context.Context, url string, ttl time.Duration) (*RedisAbilityCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisAbilityCacheFromClient(client, defaultPrefix, ttl), nil
}

// NewRedisAbilityCacheFromClient usa um client já configurado
func NewRedisAbilityCacheFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisAbilityCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisAbilityCache{client: client, prefix: prefix, ttl: ttl}
}

var _ ports.AbilityCache = (*RedisAbilityCache)(nil)

func (c *RedisAbilityCache) key(userID uint) string {
	return c.prefix + strconv.FormatUint(uint64(userID), 10)
}

func (c *RedisAbilityCache) Get(ctx context.Context, userID uint) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var abilities []string
	if err := json.Unmarshal(data, &abilities); err != nil {
		return nil, false, fmt.Errorf("decode abilities: %w", err)
	}
	return abilities, true, nil
}

func (c *RedisAbilityCache) Set(ctx context.Context, userID uint, abilities []string) error {
	if abilities == nil {
		abilities = []string{}
	}

	data, err := json.Marshal(abilities)
	if err != nil {
		return fmt.Errorf("encode abilities: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisAbilityCache) Invalidate(ctx context.Context, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.key(id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// InvalidateAll remove todas as chaves do prefixo usando SCAN
func (c *RedisAbilityCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close fecha a conexão com o Redis
func (c *RedisAbilityCache) Close() error {
	return c.client.Close()
}

// NoopAbilityCache nunca guarda nada; usado quando REDIS_URL não está definido
type NoopAbilityCache struct{}

var _ ports.AbilityCache = NoopAbilityCache{}

func (NoopAbilityCache) Get(context.Context, uint) ([]string, bool, error) { return nil, false, nil }
func (NoopAbilityCache) Set(context.Context, uint, []string) error         { return nil }
func (NoopAbilityCache) Invalidate(context.Context, ...uint) error         { return nil }
func (NoopAbilityCache) InvalidateAll(context.Context) error               { return nil }
