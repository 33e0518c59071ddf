package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

// FindEntries returns bookings matching filter ordered by date, time and id.
// Users or patient_info rows that do not exist leave the joined columns NULL.
func (r *scheduleRepository) FindEntries(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter) ([]entity.ScheduleEntry, error) {
	query := db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.user_id, bookings.date, bookings.time, bookings.created_at,
			users.first_name, users.last_name,
			patient_info.age, patient_info.reason, patient_info.notes`).
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Joins("LEFT JOIN patient_info ON patient_info.user_id = bookings.user_id")

	if filter.FromDate != "" {
		query = query.Where("bookings.date >= ?", filter.FromDate)
	}
	if filter.OnDate != "" {
		query = query.Where("bookings.date = ?", filter.OnDate)
	}

	entries := []entity.ScheduleEntry{}
	err := query.
		Order("bookings.date ASC, bookings.time ASC, bookings.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
