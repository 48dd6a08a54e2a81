package scanner

import (
	"image"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// BarcodeDecoder decodes the barcodes visible in one frame.
type BarcodeDecoder interface {
	// Decode returns the decoded payloads in detection order. Duplicates
	// within one frame are possible. A frame with no barcode is not an
	// error; it returns an empty slice.
	Decode(img image.Image) ([]string, error)
}

// FaceEncoder detects faces and computes their embeddings.
type FaceEncoder interface {
	// DetectAndEncode returns one embedding per detected face, in detection
	// order. The first entry is treated as "the" face.
	DetectAndEncode(img image.Image) ([]models.Embedding, error)

	// Distance reports how far apart two embeddings are. Lower is closer.
	Distance(a, b models.Embedding) float64
}

// EmbeddingLookup is the read side of the enrollment store. Absence covers
// both never-enrolled rolls and an unreadable backing store (the store fails
// open to empty).
type EmbeddingLookup interface {
	Get(roll string) (models.Embedding, bool)
}

// EmbeddingStore adds the write side used by enrollment. Put overwrites any
// existing record for the roll number.
type EmbeddingStore interface {
	EmbeddingLookup
	Put(roll string, emb models.Embedding) error
}
