package handlers

import (
	"sync"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// ActiveSlot holds the process-wide active slot snapshot. Set by an admin
// action, read by every scan; last write wins.
type ActiveSlot struct {
	mu   sync.Mutex
	slot *models.SlotContext
}

func (a *ActiveSlot) Set(slot models.SlotContext) {
	a.mu.Lock()
	a.slot = &slot
	a.mu.Unlock()
}

func (a *ActiveSlot) Get() (models.SlotContext, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.slot == nil {
		return models.SlotContext{}, false
	}
	return *a.slot, true
}
