package database

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// EmbeddingStore is the durable roll number → embedding mapping. Reads fail
// open: an unreadable or corrupt record is reported as absent, never as a
// hard error, so a damaged store behaves like an empty one.
type EmbeddingStore struct {
	db  *gorm.DB
	mu  sync.Mutex
	log *slog.Logger
}

func (d *DB) Embeddings() *EmbeddingStore {
	return &EmbeddingStore{db: d.gorm, log: d.log}
}

// Get returns the stored embedding for the roll number, if any.
func (s *EmbeddingStore) Get(roll string) (models.Embedding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec models.FaceEmbedding
	err := s.db.Where("roll_number = ?", roll).First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("embedding lookup failed, treating as absent", "roll", roll, "error", err)
		}
		return nil, false
	}

	var emb models.Embedding
	if err := json.Unmarshal(rec.Vector, &emb); err != nil {
		s.log.Warn("stored embedding corrupt, treating as absent", "roll", roll, "error", err)
		return nil, false
	}
	return emb, true
}

// Put stores the embedding, overwriting any previous enrollment for the roll
// number.
func (s *EmbeddingStore) Put(roll string, emb models.Embedding) error {
	raw, err := json.Marshal(emb)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := models.FaceEmbedding{RollNumber: roll, Vector: raw}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "roll_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"vector", "updated_at"}),
	}).Create(&rec).Error
}
