package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FaceEmbedding is the durable roll number → embedding record. At most one
// row per roll number; re-enrollment overwrites the vector.
type FaceEmbedding struct {
	RollNumber string         `json:"roll_no" gorm:"primaryKey;column:roll_number"`
	Vector     datatypes.JSON `json:"vector"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// AdminUser holds an administrator account and its passkey credentials,
// serialized as JSON.
type AdminUser struct {
	gorm.Model
	Username    string         `json:"username" gorm:"uniqueIndex"`
	Credentials datatypes.JSON `json:"-"`
}

// Student is one row of the read-only roster database.
type Student struct {
	RollNumber string `json:"roll_no"`
	Name       string `json:"name"`
}
