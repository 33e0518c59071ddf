package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes the doctor id and patient info if they are loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	if user.Doctor != nil {
		doctorID := user.Doctor.ID
		response.DoctorID = &doctorID
	}

	if user.PatientInfo != nil {
		response.PatientInfo = &dto.PatientInfoResponse{
			Age:       user.PatientInfo.Age,
			Reason:    user.PatientInfo.Reason,
			Notes:     user.PatientInfo.Notes,
			Condition: user.PatientInfo.Condition,
		}
	}

	return response
}
