package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpolishuk/codegraph/internal/models"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "parse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMissingReturnsNil(t *testing.T) {
	c := openTestCache(t)

	entry, err := c.Get("src/main.py")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)

	stored := &Entry{
		Hash: "00000000deadbeef",
		Entities: []models.CodeEntity{
			{
				ID:   "src/main.py::main",
				Path: "src/main.py",
				Kind: models.KindFunction,
				Name: "main",
				Location: &models.Location{
					StartLine: 3,
					EndLine:   5,
					StartByte: 12,
					EndByte:   60,
				},
			},
		},
		Imports: []string{"os", "./utils"},
	}
	require.NoError(t, c.Put("src/main.py", stored))

	got, err := c.Get("src/main.py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.Hash, got.Hash)
	assert.Equal(t, stored.Imports, got.Imports)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, stored.Entities[0], got.Entities[0])
}

func TestPutReplacesPreviousEntry(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Put("a.py", &Entry{Hash: "old", Imports: []string{"x"}}))
	require.NoError(t, c.Put("a.py", &Entry{Hash: "new"}))

	got, err := c.Get("a.py")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Hash)
	assert.Empty(t, got.Imports)
}

func TestEntriesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parse.db")

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Put("b.go", &Entry{Hash: "abc"}))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Get("b.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Hash)
}
