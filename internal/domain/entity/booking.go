package entity

import (
	"time"
)

// Booking is one reserved (date, time) slot for a user. It is written once and
// never updated.
type Booking struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Time        string    `gorm:"type:varchar(5);not null" json:"time"`
	BookingCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"booking_code"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// DateString renders the booked calendar day as YYYY-MM-DD.
func (b *Booking) DateString() string {
	return b.Date.Format("2006-01-02")
}
