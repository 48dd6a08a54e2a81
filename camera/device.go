package camera

import (
	"image"
	"time"
)

// Backend selects how the OS device is opened. The preferred backend is tried
// first; a backend that opens but cannot produce a frame is rejected.
type Backend int

const (
	BackendV4L2 Backend = iota
	BackendAny
)

func (b Backend) String() string {
	switch b {
	case BackendV4L2:
		return "v4l2"
	case BackendAny:
		return "any"
	default:
		return "unknown"
	}
}

// probeOrder is the fixed backend preference for every open attempt.
var probeOrder = []Backend{BackendV4L2, BackendAny}

// Frame is one captured video frame.
type Frame struct {
	Seq       uint64
	Timestamp time.Time
	Image     image.Image
}

// Device is an opened video device. Read blocks until a frame is available or
// the read fails; a single failed read is transient, not fatal.
type Device interface {
	Read() (Frame, error)
	Close() error
}

// DeviceOpener opens the physical device on a given backend. The production
// implementation lives in the vision package; tests inject fakes.
type DeviceOpener interface {
	Open(index int, backend Backend) (Device, error)
}
