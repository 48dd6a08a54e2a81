package camera

import (
	"log/slog"
	"os/exec"
	"time"
)

// ForceReclaim returns a hook that kills any process still holding the video
// device handle, then waits briefly for the kernel to free it. Best effort:
// fuser exits non-zero when nothing holds the device, which is fine.
func ForceReclaim(devicePath string) func() {
	log := slog.Default().With("component", "camera")
	return func() {
		if err := exec.Command("fuser", "-k", devicePath).Run(); err != nil {
			log.Debug("device reclaim", "device", devicePath, "result", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
