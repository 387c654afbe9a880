package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache is a redis-backed response cache with a small local layer in
// front, so repeated reads within a minute skip the round trip.
type Cache struct {
	Addr     string
	Password string
	DB       int
	client   *redis.Client
	ctx      context.Context
	mu       sync.Mutex
	memCache map[string]localEntry
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{
		Addr:     addr,
		Password: password,
		DB:       db,
		client:   rdb,
		ctx:      context.Background(),
		memCache: make(map[string]localEntry),
	}
}

func (c *Cache) Get(key string, out any) error {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && time.Now().Before(local.Expires) {
		c.mu.Unlock()
		return json.Unmarshal(local.Data, out)
	}
	if found {
		delete(c.memCache, key)
	}
	c.mu.Unlock()

	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{Expires: time.Now().Add(time.Minute), Data: []byte(data)}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{Expires: time.Now().Add(expiration), Data: data}
	c.mu.Unlock()
	return c.client.Set(c.ctx, key, data, expiration).Err()
}

func (c *Cache) Close() {
	c.client.Close()
}
