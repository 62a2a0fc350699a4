package storage

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save("reports/invoice.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, "reports/invoice.pdf", name)

	file, err := s.Open(name)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("doomed.csv", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete("doomed.csv"))
	require.NoError(t, s.Delete("doomed.csv"), "deleting a missing file is not an error")

	_, err = s.Open("doomed.csv")
	assert.Error(t, err)
}

func TestAbsolutePathsBypassBaseDir(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "elsewhere", "b.csv")
	name, err := s.Save(abs, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, abs, name)

	file, err := s.Open(abs)
	require.NoError(t, err)
	file.Close()
}
