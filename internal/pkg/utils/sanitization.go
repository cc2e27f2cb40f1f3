package utils

import (
	"booking-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.ServiceKind = strings.ToLower(strings.TrimSpace(input.ServiceKind))
	input.Notes = strings.TrimSpace(input.Notes)
	input.Customer.Name = strings.TrimSpace(input.Customer.Name)
	input.Customer.Email = strings.TrimSpace(strings.ToLower(input.Customer.Email))
	input.Customer.Phone = strings.TrimSpace(input.Customer.Phone)
}

func SanitizeUpdateAppointmentStatusRequest(input *requests.UpdateAppointmentStatus) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}
