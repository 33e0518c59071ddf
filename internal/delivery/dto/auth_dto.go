package dto

import (
	"time"
)

// Request DTOs

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID          int64                `json:"id"`
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	Email       string               `json:"email"`
	DoctorID    *int64               `json:"doctorId,omitempty"`
	PatientInfo *PatientInfoResponse `json:"patientInfo,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type PatientInfoResponse struct {
	Age       *int    `json:"age,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Condition *string `json:"condition,omitempty"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expiresIn"`
	User      *UserResponse `json:"user"`
}
