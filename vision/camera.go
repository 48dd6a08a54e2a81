// Package vision holds the hardware-facing implementations: the gocv webcam
// opener, the ZXing barcode decoder and the dlib face encoder. Everything
// above this package works on interfaces and images.
package vision

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/D13garg/ucs503p-202526odd-alpha/camera"
)

// Opener opens webcams through OpenCV. It implements camera.DeviceOpener.
type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

func apiFor(backend camera.Backend) gocv.VideoCaptureAPI {
	if backend == camera.BackendV4L2 {
		return gocv.VideoCaptureV4L2
	}
	return gocv.VideoCaptureAny
}

func (o *Opener) Open(index int, backend camera.Backend) (camera.Device, error) {
	cap, err := gocv.OpenVideoCaptureWithAPI(index, apiFor(backend))
	if err != nil {
		return nil, fmt.Errorf("opening camera %d (%s): %w", index, backend, err)
	}
	// Keep the driver buffer shallow so Read returns a recent frame instead
	// of one queued seconds ago.
	cap.Set(gocv.VideoCaptureBufferSize, 1)
	return &webcam{cap: cap, mat: gocv.NewMat()}, nil
}

type webcam struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
	seq uint64
}

func (w *webcam) Read() (camera.Frame, error) {
	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return camera.Frame{}, fmt.Errorf("camera read failed")
	}
	img, err := w.mat.ToImage()
	if err != nil {
		return camera.Frame{}, fmt.Errorf("converting frame: %w", err)
	}
	w.seq++
	return camera.Frame{Seq: w.seq, Timestamp: time.Now(), Image: img}, nil
}

func (w *webcam) Close() error {
	w.mat.Close()
	return w.cap.Close()
}
