package scanner

import "time"

// debouncer suppresses re-evaluation of a barcode string that stays in view
// across frames. Scoped to one session.
type debouncer struct {
	window time.Duration
	now    func() time.Time
	last   map[string]time.Time
}

func newDebouncer(window time.Duration, now func() time.Time) *debouncer {
	return &debouncer{window: window, now: now, last: make(map[string]time.Time)}
}

// shouldSkip reports whether the code was already evaluated within the
// window. A skipped sighting does not refresh the window; the timestamp is
// recorded only when the code is actually evaluated.
func (d *debouncer) shouldSkip(code string) bool {
	t := d.now()
	if prev, ok := d.last[code]; ok && t.Sub(prev) < d.window {
		return true
	}
	d.last[code] = t
	return false
}
