package models

// Decision statuses layered on top of a scan outcome by the authorization
// pipeline. Any ScanStatus can also appear in AttendanceDecision.Status when
// the underlying outcome passes through unchanged.
const (
	DecisionValid            = "VALID"
	DecisionNotEnrolled      = "NOT_ENROLLED"
	DecisionNoGroup          = "NO_GROUP"
	DecisionNotInActiveGroup = "NOT_IN_ACTIVE_GROUP"
)

// AttendanceDecision is the final classification the caller persists.
type AttendanceDecision struct {
	OK         bool    `json:"ok"`
	Status     string  `json:"status"`
	RollNumber string  `json:"roll_no,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
	Group      string  `json:"group,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// Passthrough wraps an outcome the pipeline does not reclassify.
func Passthrough(o ScanOutcome) AttendanceDecision {
	return AttendanceDecision{
		OK:         false,
		Status:     string(o.Status),
		RollNumber: o.RollNumber,
		Distance:   o.Distance,
		Message:    o.Message,
	}
}
