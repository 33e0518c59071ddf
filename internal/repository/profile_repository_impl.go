package repository

import (
	"context"
	"errors"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

// Doctor Repository

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// Patient Info Repository

type patientInfoRepository struct{}

func NewPatientInfoRepository() domainRepo.PatientInfoRepository {
	return &patientInfoRepository{}
}

func (r *patientInfoRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.PatientInfo, error) {
	var info entity.PatientInfo
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}
