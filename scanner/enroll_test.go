package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

func newTestEnroller(r *rig, clock *fakeClock) *Enroller {
	return NewEnroller(r, WithEnrollerClock(clock.Now), WithEnrollerReadRetryPause(0))
}

func TestCaptureFirstFaceWins(t *testing.T) {
	clock := newFakeClock()
	r := newRig(clock,
		scriptFrame{},
		scriptFrame{faces: []models.Embedding{{0.7}, {0.9}}},
	)
	e := newTestEnroller(r, clock)

	emb, err := e.CaptureEmbedding(context.Background(), r, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, models.Embedding{0.7}, emb)
}

func TestCaptureTimesOutWithoutFace(t *testing.T) {
	clock := newFakeClock()
	r := newRig(clock)
	e := newTestEnroller(r, clock)

	_, err := e.CaptureEmbedding(context.Background(), r, 3*time.Second)
	assert.ErrorIs(t, err, ErrNoFaceCaptured)
}

func TestCaptureCancelled(t *testing.T) {
	clock := newFakeClock()
	r := newRig(clock)
	e := newTestEnroller(r, clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.CaptureEmbedding(ctx, r, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCaptureSurvivesReadFailures(t *testing.T) {
	clock := newFakeClock()
	r := newRig(clock,
		scriptFrame{readErr: errors.New("select timeout")},
		scriptFrame{faces: []models.Embedding{{0.5}}},
	)
	e := newTestEnroller(r, clock)

	emb, err := e.CaptureEmbedding(context.Background(), r, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, models.Embedding{0.5}, emb)
}
