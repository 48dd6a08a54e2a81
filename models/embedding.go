package models

// Embedding is a fixed-length face descriptor. Its dimensionality is fixed by
// the face capability and treated as opaque here.
type Embedding []float32
