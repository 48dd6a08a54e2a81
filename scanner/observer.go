package scanner

import (
	"time"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// Progress is a per-frame snapshot of a running session, for rendering or a
// live feed. The decision loop itself never draws anything.
type Progress struct {
	Elapsed  time.Duration `json:"elapsed_ms"`
	Faces    int           `json:"faces"`
	Barcodes int           `json:"barcodes"`
}

// Observer receives side-effect-only notifications from a session. Optional;
// a nil observer is valid.
type Observer interface {
	OnFrame(p Progress)
	OnOutcome(o models.ScanOutcome)
}
