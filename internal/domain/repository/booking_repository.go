package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, db *gorm.DB, booking *entity.Booking) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]entity.Booking, error)
	FindFrom(ctx context.Context, db *gorm.DB, fromDate string, limit, offset int) ([]entity.Booking, error)
}
