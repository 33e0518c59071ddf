package entity

import (
	"strings"
	"time"
)

// User is an account that can book appointments. A row in doctors marks it
// as a doctor.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor      *Doctor      `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	PatientInfo *PatientInfo `gorm:"foreignKey:UserID" json:"patient_info,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsDoctor() bool {
	return u.Doctor != nil
}
