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

// ErrInvalidRoll rejects enrollment of a roll number that does not match the
// 9-digit format.
var ErrInvalidRoll = errors.New("roll number must be exactly 9 digits")

// Service owns the scan and enrollment flows end to end: camera acquisition,
// the verification or capture loop, and guaranteed release. Both operations
// are long-running blocking calls bounded by their timeout.
type Service struct {
	cameras  *camera.Manager
	session  *Session
	enroller *Enroller
	store    EmbeddingStore
	log      *slog.Logger
}

func NewService(cameras *camera.Manager, session *Session, enroller *Enroller, store EmbeddingStore) *Service {
	return &Service{
		cameras:  cameras,
		session:  session,
		enroller: enroller,
		store:    store,
		log:      slog.Default().With("component", "scanner"),
	}
}

// ScanOnce acquires the camera, runs one verification session and always
// releases the device, whatever the session does.
func (s *Service) ScanOnce(ctx context.Context, expected []string, timeout time.Duration) models.ScanOutcome {
	own, err := s.cameras.Acquire(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return models.Aborted()
		}
		s.log.Error("camera acquisition failed", "error", err)
		return models.CameraUnavailable(err.Error())
	}
	defer own.Release()

	return s.session.Run(ctx, own.Device(), expected, timeout)
}

// Enroll captures a face embedding for the roll number and stores it,
// overwriting any previous enrollment.
func (s *Service) Enroll(ctx context.Context, roll string, timeout time.Duration) error {
	if !rollPattern.MatchString(roll) {
		return ErrInvalidRoll
	}

	own, err := s.cameras.Acquire(ctx)
	if err != nil {
		return err
	}
	defer own.Release()

	emb, err := s.enroller.CaptureEmbedding(ctx, own.Device(), timeout)
	if err != nil {
		return err
	}
	if err := s.store.Put(roll, emb); err != nil {
		return fmt.Errorf("storing embedding for %s: %w", roll, err)
	}
	s.log.Info("student enrolled", "roll", roll)
	return nil
}
