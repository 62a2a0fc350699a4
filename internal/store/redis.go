package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	"github.com/mindbridge-edu/mindbridge-core/pkg/config"
)

// RedisStore keeps the whole document as a single JSON value under one key,
// the closest server-side analog of the browser's local storage slot.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig, key string) (*RedisStore, error) {
	if key == "" {
		key = "mindbridge:data"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

// Load fetches and decodes the document, returning the seeded default when
// the key is absent.
func (s *RedisStore) Load(ctx context.Context) (*models.Document, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Seed(), nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document for %s: %w", s.key, err)
	}
	doc.EnsureCollections()
	return doc, nil
}

// Save encodes and stores the whole document without expiry.
func (s *RedisStore) Save(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document for %s: %w", s.key, err)
	}

	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
