package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D13garg/ucs503p-202526odd-alpha/attendance"
	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

type rigOpener struct {
	r   *rig
	err error
}

func (o *rigOpener) Open(int, camera.Backend) (camera.Device, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.r, nil
}

func newTestService(r *rig, clock *fakeClock, store EmbeddingStore, openErr error) *Service {
	mgr := camera.NewManager(&rigOpener{r: r, err: openErr}, camera.WithRetryDelay(time.Millisecond))
	session := NewSession(store, r, r, WithClock(clock.Now), WithReadRetryPause(0))
	enroller := NewEnroller(r, WithEnrollerClock(clock.Now), WithEnrollerReadRetryPause(0))
	return NewService(mgr, session, enroller, store)
}

func TestScanOnceCameraUnavailable(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(newRig(clock), clock, newMapStore(), errors.New("device busy"))

	out := svc.ScanOnce(context.Background(), nil, time.Minute)
	assert.Equal(t, models.StatusCameraUnavailable, out.Status)
}

func TestScanOnceReleasesCameraOnPanic(t *testing.T) {
	clock := newFakeClock()
	// The manager's acquisition test read consumes the first frame; the
	// session then hits the panicking one.
	r := newRig(clock,
		scriptFrame{},
		scriptFrame{panicMsg: "capability blew up"},
	)
	svc := newTestService(r, clock, newMapStore(), nil)

	out := svc.ScanOnce(context.Background(), nil, time.Minute)
	require.Equal(t, models.StatusInternalError, out.Status)
	assert.Equal(t, 1, r.closed, "camera released despite the internal error")

	// The camera must be free for the next caller.
	out = svc.ScanOnce(context.Background(), nil, 2*time.Second)
	assert.Equal(t, models.StatusTimeout, out.Status)
}

func TestScanOnceReleasesCameraOnCancel(t *testing.T) {
	clock := newFakeClock()
	r := newRig(clock)
	ctx, cancel := context.WithCancel(context.Background())
	r.onRead = func(n int) {
		if n == 4 {
			cancel()
		}
	}
	svc := newTestService(r, clock, newMapStore(), nil)

	out := svc.ScanOnce(ctx, nil, time.Minute)
	assert.Equal(t, models.StatusAborted, out.Status)
	assert.Equal(t, 1, r.closed)
}

func TestEnrollRejectsBadRoll(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(newRig(clock), clock, newMapStore(), nil)

	err := svc.Enroll(context.Background(), "12AB", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidRoll)
}

func TestEnrollOverwritesPreviousEmbedding(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Put(enrolledRoll, models.Embedding{1.0}))

	clock := newFakeClock()
	r := newRig(clock,
		scriptFrame{}, // consumed by the acquisition test read
		scriptFrame{faces: []models.Embedding{{0.25}}},
	)
	svc := newTestService(r, clock, store, nil)

	require.NoError(t, svc.Enroll(context.Background(), enrolledRoll, time.Minute))
	emb, ok := store.Get(enrolledRoll)
	require.True(t, ok)
	assert.Equal(t, models.Embedding{0.25}, emb, "re-enrollment replaces, never merges")
	assert.Equal(t, 1, r.closed)
}

// Full path: enrollment record + authorized group + close face → VALID.
func TestScanAndDecideValidAttendance(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Put(enrolledRoll, models.Embedding{0}))

	clock := newFakeClock()
	r := newRig(clock,
		scriptFrame{}, // acquisition test read
		scriptFrame{barcodes: []string{enrolledRoll}, faces: []models.Embedding{{0.1}}},
	)
	svc := newTestService(r, clock, store, nil)

	slot := models.SlotContext{ID: "s1", Subject: "UCS503", Time: "10:00", Groups: []string{"G1"}}
	groups := models.GroupMembership{"G1": {enrolledRoll}}

	out := svc.ScanOnce(context.Background(), nil, time.Minute)
	require.Equal(t, models.StatusMatched, out.Status)
	assert.InDelta(t, 0.1, out.Distance, 1e-6)

	decision := attendance.Decide(out, slot, groups)
	assert.True(t, decision.OK)
	assert.Equal(t, models.DecisionValid, decision.Status)
	assert.Equal(t, "G1", decision.Group)
}

// Same setup but the student belongs to no group: face distance is
// irrelevant, the decision is NO_GROUP.
func TestScanAndDecideNoGroup(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Put(enrolledRoll, models.Embedding{0}))

	clock := newFakeClock()
	r := newRig(clock,
		scriptFrame{},
		scriptFrame{barcodes: []string{enrolledRoll}, faces: []models.Embedding{{0.1}}},
	)
	svc := newTestService(r, clock, store, nil)

	slot := models.SlotContext{ID: "s1", Subject: "UCS503", Time: "10:00", Groups: []string{"G1"}}
	groups := models.GroupMembership{}

	out := svc.ScanOnce(context.Background(), nil, time.Minute)
	require.Equal(t, models.StatusMatched, out.Status)

	decision := attendance.Decide(out, slot, groups)
	assert.False(t, decision.OK)
	assert.Equal(t, models.DecisionNoGroup, decision.Status)
}
