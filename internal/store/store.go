package store

import (
	"context"
	"fmt"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	"github.com/mindbridge-edu/mindbridge-core/pkg/config"
)

// Store persists the whole document as a single value, mirroring the
// browser's local key-value storage. Load on a fresh store returns the
// seeded default document.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// New selects a backend from configuration.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory, "":
		return NewMemoryStore(), nil
	case config.StoreFile:
		return NewFileStore(cfg.Store.FilePath)
	case config.StoreRedis:
		return NewRedisStore(cfg.Redis, cfg.Store.RedisKey)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
