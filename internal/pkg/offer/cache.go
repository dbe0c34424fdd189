package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SearchKey identifies one upstream search for caching. Two requests
// with the same key share one fetched offer collection.
type SearchKey struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	TravelClass   string
	Adults        int
	Children      int
	Infants       int
}

// CacheMeta records how the cached collection was produced.
type CacheMeta struct {
	FetchedAt   time.Time `json:"fetched_at"`
	TotalOffers int       `json:"total_offers"`
	SkippedRaw  int       `json:"skipped_raw"`
}

// Cache stores normalized offer collections in redis, alongside a
// SetNX fill lock so concurrent identical searches hit the upstream
// API once.
type Cache struct {
	redis RedisClient
}

func NewCache(redis RedisClient) *Cache {
	return &Cache{redis: redis}
}

func (c *Cache) CacheKey(key SearchKey) string {
	return fmt.Sprintf("offers:cache:%s:%s:%s:%s:%s:%d:%d:%d",
		key.DepartureDate, key.ReturnDate, key.Origin, key.Destination,
		key.TravelClass, key.Adults, key.Children, key.Infants)
}

func (c *Cache) LockKey(key SearchKey) string {
	return fmt.Sprintf("offers:lock:%s:%s:%s:%s:%s:%d:%d:%d",
		key.DepartureDate, key.ReturnDate, key.Origin, key.Destination,
		key.TravelClass, key.Adults, key.Children, key.Infants)
}

func (c *Cache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *Cache) SetOffers(ctx context.Context,
	key string,
	offers []FlightOffer,
	meta CacheMeta,
	expiration time.Duration,
) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set offers: %w", err)
	}

	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := c.redis.Set(ctx, key+":metadata", metaBytes, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func (c *Cache) GetOffers(ctx context.Context, key string) ([]FlightOffer, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var offers []FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *Cache) GetMeta(ctx context.Context, key string) (CacheMeta, error) {
	metaBytes, err := c.redis.Get(ctx, key+":metadata").Bytes()
	if err != nil {
		return CacheMeta{}, err
	}

	var meta CacheMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return CacheMeta{}, err
	}

	return meta, nil
}
