package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// ScheduleRepository reads bookings joined with users and patient_info.
type ScheduleRepository interface {
	FindEntries(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter) ([]entity.ScheduleEntry, error)
}
