package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/policygraph/store"
)

// RedisGraphStore implements store.GraphStore using Redis.
type RedisGraphStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "policygraph:"
	TTL      time.Duration // Expiration for records, default 0 (no expiration)
}

// NewRedisGraphStore creates a new Redis-backed graph store.
func NewRedisGraphStore(opts RedisOptions) *RedisGraphStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "policygraph:"
	}

	return &RedisGraphStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisGraphStore) recordKey(id string) string {
	return fmt.Sprintf("%sgraph:%s", s.prefix, id)
}

func (s *RedisGraphStore) nameKey(name string) string {
	return fmt.Sprintf("%sname:%s:graphs", s.prefix, name)
}

// Save stores a record and indexes it under its name.
func (s *RedisGraphStore) Save(ctx context.Context, record *store.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.recordKey(record.ID), data, s.ttl)
	if record.Name != "" {
		nameKey := s.nameKey(record.Name)
		pipe.SAdd(ctx, nameKey, record.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, nameKey, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record to redis: %w", err)
	}
	return nil
}

// Load retrieves a record by ID.
func (s *RedisGraphStore) Load(ctx context.Context, id string) (*store.Record, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load record from redis: %w", err)
	}

	var record store.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

// List returns all records stored under a name.
func (s *RedisGraphStore) List(ctx context.Context, name string) ([]*store.Record, error) {
	ids, err := s.client.SMembers(ctx, s.nameKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records for %s: %w", name, err)
	}

	var records []*store.Record
	for _, id := range ids {
		record, err := s.Load(ctx, id)
		if err != nil {
			// The record may have expired while its index entry survived.
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes a record and its index entry.
func (s *RedisGraphStore) Delete(ctx context.Context, id string) error {
	record, err := s.Load(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.recordKey(id))
	if record.Name != "" {
		pipe.SRem(ctx, s.nameKey(record.Name), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record from redis: %w", err)
	}
	return nil
}

// Clear removes all records stored under a name.
func (s *RedisGraphStore) Clear(ctx context.Context, name string) error {
	ids, err := s.client.SMembers(ctx, s.nameKey(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to clear records for %s: %w", name, err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, s.recordKey(id))
	}
	pipe.Del(ctx, s.nameKey(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear records from redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisGraphStore) Close() error {
	return s.client.Close()
}
