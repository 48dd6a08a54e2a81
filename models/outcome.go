package models

// ScanStatus is the terminal state of one verification session.
type ScanStatus string

const (
	StatusMatched           ScanStatus = "MATCHED"
	StatusMismatch          ScanStatus = "MISMATCH"
	StatusNoFace            ScanStatus = "NO_FACE"
	StatusNoRecord          ScanStatus = "NO_RECORD"
	StatusInvalidFormat     ScanStatus = "INVALID_BARCODE_FORMAT"
	StatusNotExpected       ScanStatus = "NOT_EXPECTED"
	StatusTimeout           ScanStatus = "TIMEOUT"
	StatusAborted           ScanStatus = "ABORTED"
	StatusCameraUnavailable ScanStatus = "CAMERA_UNAVAILABLE"
	StatusInternalError     ScanStatus = "INTERNAL_ERROR"
)

// ScanOutcome is produced exactly once per session and is immutable after
// creation. Use the constructors below so each kind only carries the fields
// that belong to it.
type ScanOutcome struct {
	Status     ScanStatus `json:"status"`
	RollNumber string     `json:"roll_no,omitempty"`
	Distance   float64    `json:"distance,omitempty"`
	Message    string     `json:"message,omitempty"`
}

func Matched(roll string, distance float64) ScanOutcome {
	return ScanOutcome{Status: StatusMatched, RollNumber: roll, Distance: distance}
}

func Mismatch(roll string, distance float64) ScanOutcome {
	return ScanOutcome{Status: StatusMismatch, RollNumber: roll, Distance: distance}
}

func NoFace(roll string) ScanOutcome {
	return ScanOutcome{Status: StatusNoFace, RollNumber: roll}
}

func NoRecord(roll string) ScanOutcome {
	return ScanOutcome{Status: StatusNoRecord, RollNumber: roll}
}

// InvalidFormat carries the raw decoded string, which is not a roll number.
func InvalidFormat(raw string) ScanOutcome {
	return ScanOutcome{Status: StatusInvalidFormat, RollNumber: raw}
}

func NotExpected(roll string) ScanOutcome {
	return ScanOutcome{Status: StatusNotExpected, RollNumber: roll}
}

func TimedOut() ScanOutcome {
	return ScanOutcome{Status: StatusTimeout, Message: "no barcode detected within timeout"}
}

func Aborted() ScanOutcome {
	return ScanOutcome{Status: StatusAborted, Message: "scan cancelled"}
}

func CameraUnavailable(msg string) ScanOutcome {
	return ScanOutcome{Status: StatusCameraUnavailable, Message: msg}
}

func InternalError(msg string) ScanOutcome {
	return ScanOutcome{Status: StatusInternalError, Message: msg}
}

// HasRollNumber reports whether the outcome identifies a student. The raw
// string carried by INVALID_BARCODE_FORMAT is not a roll number.
func (o ScanOutcome) HasRollNumber() bool {
	switch o.Status {
	case StatusMatched, StatusMismatch, StatusNoFace, StatusNoRecord, StatusNotExpected:
		return true
	}
	return false
}

// Terminal statuses with no student identity attached pass through the
// attendance decision unchanged and imply no attendance record.
func (o ScanOutcome) IsPassthrough() bool {
	return !o.HasRollNumber()
}
