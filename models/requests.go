package models

type EnrollRequest struct {
	RollNumber string `json:"roll_no" binding:"required"`
}

type ScanRequest struct {
	ExpectedSlotID string `json:"expected_slot_id"`
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type SetSlotRequest struct {
	SlotID string `json:"slot_id" binding:"required"`
}
