package utils

import (
	"booking-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateAppointmentID returns the id stored as the appointment document _id.
func GenerateAppointmentID() string {
	return uuid.NewString()
}

// ValidateAppointmentID rejects path ids that GenerateAppointmentID could not
// have produced.
func ValidateAppointmentID(id string) error {
	if id == "" {
		return errors.New("appointment id is missing from url path")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if parsed.String() != strings.ToLower(id) {
		return errors.New("appointment id must be in canonical uuid form")
	}
	return nil
}
