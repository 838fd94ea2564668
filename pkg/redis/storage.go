package redis

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Storage is a namespaced key-value store on top of a Redis client.
// Every key is stored under Config.KeyPrefix.
type Storage struct {
	db            redis.UniversalClient
	prefix        string
	scanBatchSize int64
}

// NewStorage wraps redisClient with the default prefix and batch size.
func NewStorage(redisClient redis.UniversalClient) *Storage {
	return NewStorageWithConfig(redisClient, Config{})
}

// NewStorageWithConfig uses the prefix and scan batch size from cfg.
func NewStorageWithConfig(redisClient redis.UniversalClient, cfg Config) *Storage {
	s := &Storage{
		db:            redisClient,
		prefix:        cfg.KeyPrefix,
		scanBatchSize: int64(cfg.ScanBatchSize),
	}
	if s.prefix == "" {
		s.prefix = "schemakit:"
	}
	if s.scanBatchSize <= 0 {
		s.scanBatchSize = 1000
	}
	return s
}

// Get returns ErrKeyNotFound for missing keys.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (s *Storage) Put(ctx context.Context, key string, val []byte) error {
	return s.db.Set(ctx, s.prefix+key, val, 0).Err()
}

// Delete returns ErrKeyNotFound when nothing was removed.
func (s *Storage) Delete(ctx context.Context, key string) error {
	n, err := s.db.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrKeyNotFound
	}
	return nil
}

// List returns every key under the prefix, without it, in sorted order.
// It uses SCAN to avoid blocking Redis.
func (s *Storage) List(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.db.Scan(ctx, cursor, s.prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range batch {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
		if cursor = next; cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
