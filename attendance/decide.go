// Package attendance turns raw scan outcomes into the final attendance
// decision and persists decisions to the per-subject logs.
package attendance

import (
	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// Decide maps a scan outcome to the final attendance classification. Pure: no
// I/O, no mutation of its inputs.
//
// Outcomes that carry no roll number pass through unchanged; no attendance
// record is implied for them. For outcomes that do identify a student the
// checks run in a fixed order and the first failing check wins:
//
//  1. an enrollment record must exist (the session already established this;
//     NO_RECORD is re-mapped here defensively),
//  2. the roll number must belong to some group,
//  3. that group must be active for the slot.
//
// Only when all three pass does the underlying outcome stand, and only
// MATCHED becomes VALID. Group authorization gates identity confidence: a
// perfectly matched face outside the active group is still rejected.
func Decide(outcome models.ScanOutcome, slot models.SlotContext, groups models.GroupMembership) models.AttendanceDecision {
	if !outcome.HasRollNumber() {
		return models.Passthrough(outcome)
	}

	if outcome.Status == models.StatusNoRecord {
		return models.AttendanceDecision{
			Status:     models.DecisionNotEnrolled,
			RollNumber: outcome.RollNumber,
		}
	}

	group, ok := groups.GroupOf(outcome.RollNumber)
	if !ok {
		return models.AttendanceDecision{
			Status:     models.DecisionNoGroup,
			RollNumber: outcome.RollNumber,
		}
	}

	if !slot.Authorizes(group) {
		return models.AttendanceDecision{
			Status:     models.DecisionNotInActiveGroup,
			RollNumber: outcome.RollNumber,
			Group:      group,
		}
	}

	if outcome.Status == models.StatusMatched {
		return models.AttendanceDecision{
			OK:         true,
			Status:     models.DecisionValid,
			RollNumber: outcome.RollNumber,
			Distance:   outcome.Distance,
			Group:      group,
		}
	}

	d := models.Passthrough(outcome)
	d.Group = group
	return d
}
