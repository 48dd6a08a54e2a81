package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// rollPattern is the roll number wire format: exactly 9 decimal digits.
var rollPattern = regexp.MustCompile(`^[0-9]{9}$`)

const (
	// DefaultMatchThreshold classifies a face distance: strictly below is a
	// match, at or above is a mismatch.
	DefaultMatchThreshold = 0.4

	// DefaultDebounceWindow suppresses re-evaluation of a barcode that stays
	// in view across consecutive frames.
	DefaultDebounceWindow = time.Second

	defaultReadRetryPause = 50 * time.Millisecond
)

// Session runs the verification loop against an owned camera device. A
// Session is stateless between runs and safe to reuse sequentially; camera
// exclusivity is the Manager's job, not the Session's.
type Session struct {
	store          EmbeddingLookup
	decoder        BarcodeDecoder
	encoder        FaceEncoder
	threshold      float64
	debounceWindow time.Duration
	readRetryPause time.Duration
	now            func() time.Time
	observer       Observer
	log            *slog.Logger
}

type SessionOption func(*Session)

// WithThreshold overrides the match distance threshold.
func WithThreshold(t float64) SessionOption {
	return func(s *Session) { s.threshold = t }
}

func WithDebounceWindow(d time.Duration) SessionOption {
	return func(s *Session) { s.debounceWindow = d }
}

func WithReadRetryPause(d time.Duration) SessionOption {
	return func(s *Session) { s.readRetryPause = d }
}

// WithClock injects the time source. Timeout and debounce become
// deterministic functions of the injected clock, which replay tests rely on.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func WithObserver(o Observer) SessionOption {
	return func(s *Session) { s.observer = o }
}

func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

func NewSession(store EmbeddingLookup, decoder BarcodeDecoder, encoder FaceEncoder, opts ...SessionOption) *Session {
	s := &Session{
		store:          store,
		decoder:        decoder,
		encoder:        encoder,
		threshold:      DefaultMatchThreshold,
		debounceWindow: DefaultDebounceWindow,
		readRetryPause: defaultReadRetryPause,
		now:            time.Now,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "scanner")
	return s
}

// Run reads frames until a qualifying barcode+face event, a timeout, or a
// cancel produces exactly one terminal outcome. The device stays owned by the
// caller; Run never releases it.
//
// expected, when non-nil, is the explicit roster of roll numbers allowed in
// this session. Cancellation is cooperative, checked once per iteration, and
// the timeout is wall-clock, checked before each blocking read; a
// pathologically slow read can therefore delay timeout detection past the
// nominal bound.
func (s *Session) Run(ctx context.Context, dev camera.Device, expected []string, timeout time.Duration) (out models.ScanOutcome) {
	defer func() {
		// Capability failures must not propagate past the session boundary.
		if r := recover(); r != nil {
			s.log.Error("scan capability panic", "panic", r)
			out = models.InternalError(fmt.Sprintf("scan failed: %v", r))
		}
		if s.observer != nil {
			s.observer.OnOutcome(out)
		}
		s.log.Info("scan finished", "status", out.Status, "roll", out.RollNumber)
	}()

	var expectedSet map[string]struct{}
	if expected != nil {
		expectedSet = make(map[string]struct{}, len(expected))
		for _, roll := range expected {
			expectedSet[roll] = struct{}{}
		}
	}

	start := s.now()
	deadline := start.Add(timeout)
	seen := newDebouncer(s.debounceWindow, s.now)

	for {
		select {
		case <-ctx.Done():
			return models.Aborted()
		default:
		}
		if s.now().After(deadline) {
			return models.TimedOut()
		}

		frame, err := dev.Read()
		if err != nil {
			// A single failed read is transient; pause and try again.
			s.pause(ctx)
			continue
		}

		barcodes, err := s.decoder.Decode(frame.Image)
		if err != nil {
			s.log.Error("barcode decode failed", "error", err)
			return models.InternalError(fmt.Sprintf("barcode decode: %v", err))
		}
		// Faces are computed for every frame, not only when a barcode is
		// present: the barcode event consumes this frame's face result, and
		// the loop never waits an extra frame for a face to appear.
		faces, err := s.encoder.DetectAndEncode(frame.Image)
		if err != nil {
			s.log.Error("face detection failed", "error", err)
			return models.InternalError(fmt.Sprintf("face detection: %v", err))
		}

		if s.observer != nil {
			s.observer.OnFrame(Progress{Elapsed: s.now().Sub(start), Faces: len(faces), Barcodes: len(barcodes)})
		}

		for _, raw := range barcodes {
			raw = strings.TrimSpace(raw)
			if !rollPattern.MatchString(raw) {
				return models.InvalidFormat(raw)
			}
			if seen.shouldSkip(raw) {
				continue
			}
			if expectedSet != nil {
				if _, ok := expectedSet[raw]; !ok {
					return models.NotExpected(raw)
				}
			}
			stored, ok := s.store.Get(raw)
			if !ok {
				return models.NoRecord(raw)
			}
			if len(faces) == 0 {
				return models.NoFace(raw)
			}
			dist := s.encoder.Distance(stored, faces[0])
			s.log.Info("face compared", "roll", raw, "distance", dist, "threshold", s.threshold)
			if dist < s.threshold {
				return models.Matched(raw, dist)
			}
			return models.Mismatch(raw, dist)
		}
	}
}

func (s *Session) pause(ctx context.Context) {
	if s.readRetryPause <= 0 {
		return
	}
	t := time.NewTimer(s.readRetryPause)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
