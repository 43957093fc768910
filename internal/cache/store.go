package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sellerdesk/stockwise/backend-go/internal/config"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

const datasetKeyPrefix = "dataset"

// Key addresses one cached dataset for one store. The composite form
// (instead of a concatenated string) keeps similarly named datasets
// from colliding and makes tenant isolation structural.
type Key struct {
	Dataset domain.Dataset
	StoreID string
}

func (k Key) redisKey() string {
	return fmt.Sprintf("%s:%s:%s", datasetKeyPrefix, k.Dataset, k.StoreID)
}

// Record is the stored envelope: the raw payload plus its write time.
type Record struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Store persists dataset payloads with age reporting. There is no
// expiry policy: staleness is surfaced to the caller, never enforced.
// Absence is a valid non-error state on Get and Age.
type Store interface {
	Save(ctx context.Context, key Key, payload []byte) error
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Age(ctx context.Context, key Key) (time.Duration, bool, error)
	Clear(ctx context.Context, key Key) error
}

type redisStore struct {
	client *redis.Client
	clock  func() time.Time
}

// NewStore builds a cache store from config: redis-backed when the
// cache is enabled, in-memory otherwise.
func NewStore(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return NewMemoryStore(), nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisStore{client: client, clock: time.Now}, nil
}

func (s *redisStore) Save(ctx context.Context, key Key, payload []byte) error {
	record := Record{Data: payload, Timestamp: s.clock().UTC()}
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	// No TTL: records live until overwritten or cleared
	if err := s.client.Set(ctx, key.redisKey(), encoded, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	record, ok, err := s.load(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return record.Data, true, nil
}

func (s *redisStore) Age(ctx context.Context, key Key) (time.Duration, bool, error) {
	record, ok, err := s.load(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	return s.clock().Sub(record.Timestamp), true, nil
}

func (s *redisStore) Clear(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, key.redisKey()).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *redisStore) load(ctx context.Context, key Key) (Record, bool, error) {
	payload, err := s.client.Get(ctx, key.redisKey()).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, false, fmt.Errorf("decode cache record: %w", err)
	}
	return record, true, nil
}
