package camera

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrUnavailable is returned once the retry budget for opening the device is
// exhausted.
var ErrUnavailable = errors.New("camera unavailable")

const (
	defaultMaxAttempts = 5
	defaultRetryDelay  = time.Second
)

// Manager arbitrates exclusive access to the single physical camera. At most
// one Ownership is live at any time; concurrent acquirers block until the
// holder releases or their context is done.
type Manager struct {
	opener      DeviceOpener
	reclaim     func()
	index       int
	maxAttempts int
	retryDelay  time.Duration
	log         *slog.Logger

	slot chan struct{} // 1-slot semaphore; holding the token = owning the camera
}

type Option func(*Manager)

// WithIndex sets the OS device index (default 0).
func WithIndex(index int) Option {
	return func(m *Manager) { m.index = index }
}

// WithReclaim installs the forced device reclamation hook, run after each
// failed open attempt before retrying.
func WithReclaim(fn func()) Option {
	return func(m *Manager) { m.reclaim = fn }
}

func WithMaxAttempts(n int) Option {
	return func(m *Manager) { m.maxAttempts = n }
}

// WithRetryDelay sets the base delay between open attempts. The actual wait
// escalates with the attempt number.
func WithRetryDelay(d time.Duration) Option {
	return func(m *Manager) { m.retryDelay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(opener DeviceOpener, opts ...Option) *Manager {
	m := &Manager{
		opener:      opener,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		log:         slog.Default(),
		slot:        make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("component", "camera")
	return m
}

// Acquire blocks until the camera is free, then opens the device. On failure
// the semaphore is freed again so later callers can try. The returned
// Ownership must be released exactly once; Release is idempotent.
func (m *Manager) Acquire(ctx context.Context) (*Ownership, error) {
	select {
	case m.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for camera: %w", ctx.Err())
	}

	dev, err := m.open(ctx)
	if err != nil {
		<-m.slot
		return nil, err
	}
	return &Ownership{mgr: m, dev: dev}, nil
}

func (m *Manager) open(ctx context.Context) (Device, error) {
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if attempt > 1 {
			m.log.Warn("camera open retry", "attempt", attempt, "max", m.maxAttempts)
			if m.reclaim != nil {
				m.reclaim()
			}
			// Escalating delay: attempt 2 waits one base delay, attempt 3 two.
			wait := time.Duration(attempt-1) * m.retryDelay
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
		}

		for _, backend := range probeOrder {
			dev, err := m.opener.Open(m.index, backend)
			if err != nil {
				m.log.Debug("backend open failed", "backend", backend.String(), "error", err)
				continue
			}
			// A backend that reports "opened" but cannot return a first
			// frame is unusable; release it and move on.
			if _, err := dev.Read(); err != nil {
				m.log.Debug("backend failed test read", "backend", backend.String(), "error", err)
				if cerr := dev.Close(); cerr != nil {
					m.log.Warn("closing unusable device", "error", cerr)
				}
				continue
			}
			m.log.Info("camera acquired", "index", m.index, "backend", backend.String(), "attempt", attempt)
			return dev, nil
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrUnavailable, m.maxAttempts)
}

// Ownership is the token of exclusive camera possession. It is created by
// Acquire and destroyed by Release.
type Ownership struct {
	mgr     *Manager
	dev     Device
	cleanup []func() error
	once    sync.Once
}

// Device returns the owned device. Only valid until Release.
func (o *Ownership) Device() Device {
	return o.dev
}

// OnRelease registers a cleanup hook (UI teardown and the like) run after the
// device handle is released. Hook errors are logged and swallowed.
func (o *Ownership) OnRelease(fn func() error) {
	o.cleanup = append(o.cleanup, fn)
}

// Release closes the device and frees the camera for the next acquirer. Safe
// to call multiple times; never panics and never returns an error to the
// caller.
func (o *Ownership) Release() {
	o.once.Do(func() {
		if err := o.dev.Close(); err != nil {
			o.mgr.log.Warn("releasing camera", "error", err)
		}
		for _, fn := range o.cleanup {
			o.runCleanup(fn)
		}
		<-o.mgr.slot
		o.mgr.log.Info("camera released")
	})
}

func (o *Ownership) runCleanup(fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			o.mgr.log.Warn("camera cleanup panic", "panic", r)
		}
	}()
	if err := fn(); err != nil {
		o.mgr.log.Warn("camera cleanup", "error", err)
	}
}
