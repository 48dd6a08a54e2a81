package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

type slotFile struct {
	Slots []models.SlotContext `json:"slots"`
}

// LoadSlots reads the slot definitions. A missing or corrupt file yields an
// empty list: the kiosk still serves, the admin just has nothing to activate.
func LoadSlots(path string) []models.SlotContext {
	log := slog.Default().With("component", "config")
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("slots file unreadable, using empty list", "path", path, "error", err)
		}
		return nil
	}
	var f slotFile
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Warn("slots file corrupt, using empty list", "path", path, "error", err)
		return nil
	}
	return f.Slots
}

// FindSlot locates a slot by its id.
func FindSlot(slots []models.SlotContext, id string) (models.SlotContext, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return models.SlotContext{}, false
}

// LoadGroups reads the group → roll numbers mapping, failing open to an
// empty mapping on a missing or corrupt file.
func LoadGroups(path string) models.GroupMembership {
	log := slog.Default().With("component", "config")
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("groups file unreadable, using empty mapping", "path", path, "error", err)
		}
		return models.GroupMembership{}
	}
	var groups models.GroupMembership
	if err := json.Unmarshal(raw, &groups); err != nil {
		log.Warn("groups file corrupt, using empty mapping", "path", path, "error", err)
		return models.GroupMembership{}
	}
	return groups
}
