package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
)

// FileStore persists the document as one JSON file on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore ensures the parent directory exists and returns a handle.
// The file itself is created lazily on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = "./data/mindbridge.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load reads the document file, returning the seeded default when the file
// does not exist yet.
func (s *FileStore) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Seed(), nil
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}

	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document file: %w", err)
	}
	doc.EnsureCollections()
	return doc, nil
}

// Save writes the whole document back to disk. Last writer wins.
func (s *FileStore) Save(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	return nil
}
