package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "store.db"), "")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestEmbeddingRoundTrip(t *testing.T) {
	store := openTestDB(t).Embeddings()

	emb := models.Embedding{0.1, 0.2, 0.3}
	require.NoError(t, store.Put("123456789", emb))

	got, ok := store.Get("123456789")
	require.True(t, ok)
	assert.Equal(t, emb, got)
}

func TestEmbeddingAbsent(t *testing.T) {
	store := openTestDB(t).Embeddings()

	_, ok := store.Get("999999999")
	assert.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	store := openTestDB(t).Embeddings()

	require.NoError(t, store.Put("123456789", models.Embedding{1, 1}))
	require.NoError(t, store.Put("123456789", models.Embedding{2, 2}))

	got, ok := store.Get("123456789")
	require.True(t, ok)
	assert.Equal(t, models.Embedding{2, 2}, got, "re-enrollment replaces the vector")

	var count int64
	store.db.Model(&models.FaceEmbedding{}).Count(&count)
	assert.Equal(t, int64(1), count, "at most one record per roll number")
}

func TestCorruptVectorTreatedAsAbsent(t *testing.T) {
	db := openTestDB(t)
	store := db.Embeddings()

	rec := models.FaceEmbedding{RollNumber: "123456789", Vector: datatypes.JSON(`{not json`)}
	require.NoError(t, db.gorm.Create(&rec).Error)

	_, ok := store.Get("123456789")
	assert.False(t, ok, "corrupt storage fails open to absent")
}
