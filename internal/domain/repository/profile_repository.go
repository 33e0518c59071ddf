package repository

import (
	"context"

	"clinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Doctor, error)
}

type PatientInfoRepository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.PatientInfo, error)
}
