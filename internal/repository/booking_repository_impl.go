package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error {
	return db.WithContext(ctx).Create(booking).Error
}

// FindByUserID returns the user's bookings, most recently created first.
func (r *bookingRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindFrom pages through bookings dated on or after fromDate in id order.
func (r *bookingRepository) FindFrom(ctx context.Context, db *gorm.DB, fromDate string, limit, offset int) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.WithContext(ctx).
		Where("date >= ?", fromDate).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
