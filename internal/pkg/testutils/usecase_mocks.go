package testutils

import (
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/dto/requests"
	"context"

	"github.com/stretchr/testify/mock"
)

type AppointmentUsecaseMock struct {
	mock.Mock
}

func (m *AppointmentUsecaseMock) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*models.Appointment, error) {
	args := m.Called(ctx, request)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecaseMock) SetAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	args := m.Called(ctx, id, status)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecaseMock) CancelAppointment(ctx context.Context, id string, actor requests.Actor) (*models.Appointment, error) {
	args := m.Called(ctx, id, actor)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecaseMock) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentUsecaseMock) FindAppointmentsByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error) {
	args := m.Called(ctx, ownerRef)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

type AvailabilityUsecaseMock struct {
	mock.Mock
}

func (m *AvailabilityUsecaseMock) GetMonthlyAvailability(ctx context.Context, year, month int) (map[string]models.DateAvailability, error) {
	args := m.Called(ctx, year, month)
	availability, _ := args.Get(0).(map[string]models.DateAvailability)
	return availability, args.Error(1)
}

func (m *AvailabilityUsecaseMock) GetAvailability(ctx context.Context, startDate, endDate string) (map[string]models.DateAvailability, error) {
	args := m.Called(ctx, startDate, endDate)
	availability, _ := args.Get(0).(map[string]models.DateAvailability)
	return availability, args.Error(1)
}

func (m *AvailabilityUsecaseMock) GetDateAvailability(ctx context.Context, date string) (*models.DateAvailability, error) {
	args := m.Called(ctx, date)
	availability, _ := args.Get(0).(*models.DateAvailability)
	return availability, args.Error(1)
}

func (m *AvailabilityUsecaseMock) CheckAvailability(ctx context.Context, date, clock string) (*models.SlotCheck, error) {
	args := m.Called(ctx, date, clock)
	check, _ := args.Get(0).(*models.SlotCheck)
	return check, args.Error(1)
}

func (m *AvailabilityUsecaseMock) InvalidateDate(ctx context.Context, date string) {
	m.Called(ctx, date)
}
