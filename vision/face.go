package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/Kagami/go-face"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// Faces wraps the dlib recognizer. Descriptors are 128-dimensional; the
// models directory must contain the dlib shape predictor and resnet files.
// It implements scanner.FaceEncoder.
type Faces struct {
	rec *face.Recognizer
}

func NewFaces(modelsDir string) (*Faces, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("loading face models from %s: %w", modelsDir, err)
	}
	return &Faces{rec: rec}, nil
}

func (f *Faces) DetectAndEncode(img image.Image) ([]models.Embedding, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	found, err := f.rec.Recognize(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("recognizing faces: %w", err)
	}
	embs := make([]models.Embedding, 0, len(found))
	for _, fc := range found {
		emb := make(models.Embedding, len(fc.Descriptor))
		for i, v := range fc.Descriptor {
			emb[i] = v
		}
		embs = append(embs, emb)
	}
	return embs, nil
}

// Distance is the euclidean distance between two descriptors. Embeddings of
// mismatched length compare as infinitely far apart.
func (f *Faces) Distance(a, b models.Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (f *Faces) Close() {
	f.rec.Close()
}
