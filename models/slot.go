package models

// SlotContext identifies the class slot a scan is verified against. Loaded
// from configuration and treated as a read-only snapshot.
type SlotContext struct {
	ID      string   `json:"id"`
	Subject string   `json:"subject"`
	Time    string   `json:"time"`
	Groups  []string `json:"groups"`
	// Students, when present, is the explicit roster of roll numbers
	// expected in this slot. Nil means any enrolled student may scan.
	Students []string `json:"students,omitempty"`
}

// Authorizes reports whether the group is active for this slot.
func (s SlotContext) Authorizes(group string) bool {
	for _, g := range s.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// GroupMembership maps a group name to its member roll numbers. Read-only.
type GroupMembership map[string][]string

// GroupOf returns the first group containing the roll number.
func (g GroupMembership) GroupOf(roll string) (string, bool) {
	for name, rolls := range g {
		for _, r := range rolls {
			if r == roll {
				return name, true
			}
		}
	}
	return "", false
}
