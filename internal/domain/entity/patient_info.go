package entity

import "time"

// PatientInfo holds the medical-profile fields shown to doctors. This service
// only reads it.
type PatientInfo struct {
	UserID    int64     `gorm:"primaryKey" json:"user_id"`
	Age       *int      `json:"age,omitempty"`
	Reason    *string   `gorm:"type:text" json:"reason,omitempty"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	Condition *string   `gorm:"type:text" json:"condition,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientInfo) TableName() string {
	return "patient_info"
}
