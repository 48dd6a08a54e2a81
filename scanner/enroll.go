package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// ErrNoFaceCaptured means the enrollment loop reached its timeout without
// ever seeing a face.
var ErrNoFaceCaptured = errors.New("no face captured")

// Enroller captures a single face embedding from an owned camera device.
type Enroller struct {
	encoder        FaceEncoder
	readRetryPause time.Duration
	now            func() time.Time
	log            *slog.Logger
}

func NewEnroller(encoder FaceEncoder, opts ...EnrollerOption) *Enroller {
	e := &Enroller{
		encoder:        encoder,
		readRetryPause: defaultReadRetryPause,
		now:            time.Now,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "enroll")
	return e
}

type EnrollerOption func(*Enroller)

func WithEnrollerClock(now func() time.Time) EnrollerOption {
	return func(e *Enroller) { e.now = now }
}

func WithEnrollerReadRetryPause(d time.Duration) EnrollerOption {
	return func(e *Enroller) { e.readRetryPause = d }
}

func WithEnrollerLogger(l *slog.Logger) EnrollerOption {
	return func(e *Enroller) { e.log = l }
}

// CaptureEmbedding reads frames until a face is detected, the timeout
// elapses, or the context is cancelled. The first detected face wins.
func (e *Enroller) CaptureEmbedding(ctx context.Context, dev camera.Device, timeout time.Duration) (emb models.Embedding, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("enroll capability panic", "panic", r)
			emb, err = nil, fmt.Errorf("enrollment failed: %v", r)
		}
	}()

	deadline := e.now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if e.now().After(deadline) {
			return nil, ErrNoFaceCaptured
		}

		frame, readErr := dev.Read()
		if readErr != nil {
			e.sleep(ctx)
			continue
		}
		faces, encErr := e.encoder.DetectAndEncode(frame.Image)
		if encErr != nil {
			e.log.Error("face detection failed", "error", encErr)
			return nil, fmt.Errorf("face detection: %w", encErr)
		}
		if len(faces) > 0 {
			return faces[0], nil
		}
	}
}

func (e *Enroller) sleep(ctx context.Context) {
	if e.readRetryPause <= 0 {
		return
	}
	t := time.NewTimer(e.readRetryPause)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
