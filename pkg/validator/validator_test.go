package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Date  string `json:"date" validate:"required,ymd"`
	Time  string `json:"time" validate:"required,hhmm"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestValidate_Slot(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&slotRequest{Date: "2025-11-10", Time: "14:00"}))

	err := v.Validate(&slotRequest{Date: "2025-11-31", Time: "9:00", Email: "nope"})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, map[string]string{
		"date":  "date must be a date in YYYY-MM-DD format",
		"time":  "time must be a time in HH:MM format",
		"email": "email must be a valid email address",
	}, fields)
}

func TestValidate_Required(t *testing.T) {
	v := NewValidator()

	fields := v.FormatValidationErrors(v.Validate(&slotRequest{}))
	assert.Equal(t, "date is required", fields["date"])
	assert.Equal(t, "time is required", fields["time"])
	assert.NotContains(t, fields, "email")
}

func TestFormatValidationErrors_IgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
