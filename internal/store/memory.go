package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
)

// MemoryStore keeps the document as a marshalled blob guarded by a mutex.
// Round-tripping through JSON on every Load/Save gives callers detached
// copies and the same serialisation behaviour as the durable backends.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryStore returns a store holding the seeded default document.
func NewMemoryStore() *MemoryStore {
	raw, _ := json.Marshal(Seed())
	return &MemoryStore{raw: raw}
}

// Load returns a detached copy of the current document.
func (s *MemoryStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &models.Document{}
	if err := json.Unmarshal(s.raw, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.EnsureCollections()
	return doc, nil
}

// Save replaces the whole document. Last writer wins.
func (s *MemoryStore) Save(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}
