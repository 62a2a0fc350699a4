package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbridge-edu/mindbridge-core/internal/models"
	"github.com/mindbridge-edu/mindbridge-core/pkg/config"
)

func TestSeedCatalogAndSettings(t *testing.T) {
	doc := Seed()

	require.Len(t, doc.Courses, 5)
	assert.Equal(t, "high-school", doc.Courses[0].ID)

	var special *models.Course
	for i := range doc.Courses {
		if doc.Courses[i].ID == "special-education" {
			special = &doc.Courses[i]
		}
	}
	require.NotNil(t, special)
	assert.Len(t, special.Categories, 4)
	assert.Equal(t, 100, special.Price)

	assert.Equal(t, "Mindbridge Online School", doc.Settings.SchoolName)
	assert.Empty(t, doc.Students)
	assert.NotNil(t, doc.Tutors)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Courses, 5, "fresh store starts seeded")

	doc.Students = append(doc.Students, models.Student{ID: "MB1", Name: "Alice Chen"})
	require.NoError(t, s.Save(ctx, doc))

	reloaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded.Students, 1)
	assert.Equal(t, "Alice Chen", reloaded.Students[0].Name)
}

func TestMemoryStoreLoadsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	doc.Students = append(doc.Students, models.Student{ID: "MB1"})

	// Mutating a loaded copy without Save must not leak into the store.
	fresh, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh.Students)
}

func TestFileStoreSeedsWhenFileAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "mindbridge.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Courses, 5)
	assert.Empty(t, doc.Students)
}

func TestFileStorePersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "mindbridge.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	doc, err := first.Load(ctx)
	require.NoError(t, err)
	doc.Students = append(doc.Students, models.Student{ID: "MB1", Name: "Alice Chen"})
	require.NoError(t, first.Save(ctx, doc))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	reloaded, err := second.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded.Students, 1)
	assert.Equal(t, "MB1", reloaded.Students[0].ID)
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(&config.Config{Store: config.StoreConfig{Backend: config.StoreMemory}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(&config.Config{Store: config.StoreConfig{
		Backend:  config.StoreFile,
		FilePath: filepath.Join(t.TempDir(), "doc.json"),
	}})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = New(&config.Config{Store: config.StoreConfig{Backend: "cassandra"}})
	assert.Error(t, err)
}
