package appointments

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/app/services/core/availability"
	"booking-service/internal/app/services/core/notifications"
	"booking-service/internal/app/services/core/slot"
	"booking-service/internal/pkg/constvars"
	"booking-service/internal/pkg/dto/requests"
	"booking-service/internal/pkg/exceptions"
	"booking-service/internal/pkg/testutils"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store        *testutils.AppointmentStore
	publisher    *testutils.RecordingPublisher
	trigger      *notifications.Trigger
	availability contracts.AvailabilityUsecase
	usecase      *appointmentUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := slot.NewCatalog(config.DefaultBusinessCalendar(), time.UTC)
	require.NoError(t, err)

	store := testutils.NewAppointmentStore()
	publisher := &testutils.RecordingPublisher{}
	internalConfig := &config.InternalConfig{}
	trigger := notifications.NewTrigger(store, publisher, internalConfig, zap.NewNop())
	availabilityUsecase := availability.NewAvailabilityUsecase(store, catalog, nil, internalConfig, zap.NewNop())

	usecase := NewAppointmentUsecase(store, availabilityUsecase, catalog, trigger, zap.NewNop()).(*appointmentUsecase)
	usecase.Now = func() time.Time { return fixedNow }

	return &fixture{
		store:        store,
		publisher:    publisher,
		trigger:      trigger,
		availability: availabilityUsecase,
		usecase:      usecase,
	}
}

func candidate(date, clock string) *requests.CreateAppointment {
	return &requests.CreateAppointment{
		Date: date,
		Time: clock,
		Customer: requests.Customer{
			Name:  "Lucía Pérez",
			Email: "lucia@example.com",
			Phone: "+34 600 000 000",
		},
		ServiceKind:      "express",
		ParticipantCount: 2,
	}
}

func TestAppointmentUsecase_WorkedExample(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	check, err := f.availability.CheckAvailability(ctx, "2025-03-10", "10:00")
	require.NoError(t, err)
	assert.True(t, check.Available)

	created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-10", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, created.Status)
	assert.NotEmpty(t, created.ID)

	_, err = f.usecase.CreateAppointment(ctx, candidate("2025-03-10", "10:00"))
	assert.True(t, exceptions.HasCode(err, constvars.ErrCodeSlotTaken))

	month, err := f.availability.GetMonthlyAvailability(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, month["2025-03-10"].BookedSlots)
	for _, s := range month["2025-03-10"].TimeSlots {
		if s.Time == "10:00" {
			assert.False(t, s.IsAvailable)
			assert.Equal(t, created.ID, s.AppointmentID)
		}
	}

	confirmed, err := f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	cancelled, err := f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

	check, err = f.availability.CheckAvailability(ctx, "2025-03-10", "10:00")
	require.NoError(t, err)
	assert.True(t, check.Available)

	f.trigger.Wait()
	assert.Equal(t, 1, f.publisher.CountFor(created.ID, models.NotificationEventCreated))
	assert.Equal(t, 1, f.publisher.CountFor(created.ID, models.NotificationEventConfirmed))
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists a pending record", func(t *testing.T) {
		f := newFixture(t)
		owner := "user-42"
		request := candidate("2025-03-12", "15:30")
		request.ServiceKind = "complete"
		request.Notes = "  first visit  "
		request.OwnerRef = &owner

		created, err := f.usecase.CreateAppointment(ctx, request)
		require.NoError(t, err)

		stored, err := f.store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.AppointmentStatusPending, stored.Status)
		assert.Equal(t, 60, stored.DurationMinutes)
		assert.Equal(t, "first visit", stored.Notes)
		assert.Equal(t, "2025-03-12|15:30", stored.SlotKey)
		require.NotNil(t, stored.OwnerRef)
		assert.Equal(t, owner, *stored.OwnerRef)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	validationCases := []struct {
		name   string
		mutate func(r *requests.CreateAppointment)
		code   string
	}{
		{name: "Missing name", mutate: func(r *requests.CreateAppointment) { r.Customer.Name = "  " }, code: constvars.ErrCodeMissingField},
		{name: "Missing phone", mutate: func(r *requests.CreateAppointment) { r.Customer.Phone = "" }, code: constvars.ErrCodeMissingField},
		{name: "Missing date", mutate: func(r *requests.CreateAppointment) { r.Date = "" }, code: constvars.ErrCodeMissingField},
		{name: "Malformed email", mutate: func(r *requests.CreateAppointment) { r.Customer.Email = "lucia.example.com" }, code: constvars.ErrCodeInvalidEmail},
		{name: "No participants", mutate: func(r *requests.CreateAppointment) { r.ParticipantCount = 0 }, code: constvars.ErrCodeInvalidField},
		{name: "Too many participants", mutate: func(r *requests.CreateAppointment) { r.ParticipantCount = 7 }, code: constvars.ErrCodeInvalidField},
		{name: "Unknown service kind", mutate: func(r *requests.CreateAppointment) { r.ServiceKind = "deluxe" }, code: constvars.ErrCodeInvalidField},
		{name: "Malformed time", mutate: func(r *requests.CreateAppointment) { r.Time = "9:30" }, code: constvars.ErrCodeInvalidField},
		{name: "Malformed date", mutate: func(r *requests.CreateAppointment) { r.Date = "12/03/2025" }, code: constvars.ErrCodeInvalidField},
		{name: "Time outside the catalog", mutate: func(r *requests.CreateAppointment) { r.Time = "13:00" }, code: constvars.ErrCodeSlotNotOffered},
		{name: "Off-grid time", mutate: func(r *requests.CreateAppointment) { r.Time = "10:15" }, code: constvars.ErrCodeSlotNotOffered},
		{name: "Date in the past", mutate: func(r *requests.CreateAppointment) { r.Date = "2025-03-07" }, code: constvars.ErrCodeSlotNotOffered},
	}
	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			request := candidate("2025-03-12", "10:00")
			tc.mutate(request)

			created, err := f.usecase.CreateAppointment(ctx, request)
			assert.Nil(t, created)
			assert.True(t, exceptions.HasCode(err, tc.code), "got %v", err)
			assert.Zero(t, f.store.Count())
		})
	}

	t.Run("Earlier slot today is in the past", func(t *testing.T) {
		f := newFixture(t)
		f.usecase.Now = func() time.Time { return time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC) }

		_, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-10", "10:00"))
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeSlotNotOffered))

		_, err = f.usecase.CreateAppointment(ctx, candidate("2025-03-10", "10:30"))
		assert.NoError(t, err)
	})

	t.Run("Closed days reject every time", func(t *testing.T) {
		f := newFixture(t)
		for _, clock := range []string{"09:30", "10:00", "15:00", "20:30"} {
			_, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-15", clock))
			assert.True(t, exceptions.HasCode(err, constvars.ErrCodeSlotNotOffered), clock)
		}
		assert.Zero(t, f.store.Count())
	})

	t.Run("Taken slot returns refreshed availability", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)

		_, err = f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.True(t, exceptions.HasCode(err, constvars.ErrCodeSlotTaken))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		refreshed, ok := customErr.Details.(*models.DateAvailability)
		require.True(t, ok)
		assert.Equal(t, 1, refreshed.BookedSlots)
		assert.Equal(t, first.ID, refreshed.TimeSlots[1].AppointmentID)
	})

	t.Run("Existing duplicates surface as an invariant violation", func(t *testing.T) {
		f := newFixture(t)
		f.store.Seed(
			models.Appointment{ID: "d1", Date: "2025-03-12", Time: "10:00", Status: models.AppointmentStatusPending},
			models.Appointment{ID: "d2", Date: "2025-03-12", Time: "10:00", Status: models.AppointmentStatusConfirmed},
		)

		_, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeDuplicateActiveBooking))
		assert.False(t, exceptions.HasCode(err, constvars.ErrCodeSlotTaken))
	})

	t.Run("Store outage is transient", func(t *testing.T) {
		f := newFixture(t)
		f.store.FindErr = errors.New("no reachable servers")

		_, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeAvailabilityFetchFailed))
	})

	t.Run("Notification failure does not roll back", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.SetErr(errors.New("broker unreachable"))

		created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)
		f.trigger.Wait()

		stored, err := f.store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.NotifiedAt)
	})

	t.Run("Cancelled client request still books", func(t *testing.T) {
		f := newFixture(t)
		cancelled, cancel := context.WithCancel(ctx)
		defer cancel()

		created, err := f.usecase.CreateAppointment(cancelled, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)
		cancel()
		f.trigger.Wait()

		assert.Equal(t, 1, f.publisher.CountFor(created.ID, models.NotificationEventCreated))
	})
}

func TestAppointmentUsecase_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const attempts = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []*models.Appointment
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "11:00"))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			successes = append(successes, created)
		}()
	}
	wg.Wait()

	require.Len(t, successes, 1)
	assert.Equal(t, models.AppointmentStatusPending, successes[0].Status)
	require.Len(t, failures, attempts-1)
	for _, err := range failures {
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeSlotTaken), "got %v", err)
	}

	active, err := f.store.FindActiveBySlot(ctx, "2025-03-12", "11:00")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAppointmentUsecase_SetAppointmentStatus(t *testing.T) {
	ctx := context.Background()

	transitionCases := []struct {
		name    string
		path    []models.AppointmentStatus
		next    models.AppointmentStatus
		allowed bool
	}{
		{name: "pending to confirmed", next: models.AppointmentStatusConfirmed, allowed: true},
		{name: "pending to cancelled", next: models.AppointmentStatusCancelled, allowed: true},
		{name: "confirmed to cancelled", path: []models.AppointmentStatus{models.AppointmentStatusConfirmed}, next: models.AppointmentStatusCancelled, allowed: true},
		{name: "confirmed to pending", path: []models.AppointmentStatus{models.AppointmentStatusConfirmed}, next: models.AppointmentStatusPending},
		{name: "cancelled to pending", path: []models.AppointmentStatus{models.AppointmentStatusCancelled}, next: models.AppointmentStatusPending},
		{name: "cancelled to confirmed", path: []models.AppointmentStatus{models.AppointmentStatusCancelled}, next: models.AppointmentStatusConfirmed},
		{name: "cancelled to cancelled", path: []models.AppointmentStatus{models.AppointmentStatusCancelled}, next: models.AppointmentStatusCancelled},
		{name: "pending to pending", next: models.AppointmentStatusPending},
	}
	for _, tc := range transitionCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
			require.NoError(t, err)
			for _, step := range tc.path {
				_, err := f.usecase.SetAppointmentStatus(ctx, created.ID, step)
				require.NoError(t, err)
			}

			updated, err := f.usecase.SetAppointmentStatus(ctx, created.ID, tc.next)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.next, updated.Status)
				return
			}
			assert.Nil(t, updated)
			assert.True(t, exceptions.HasCode(err, constvars.ErrCodeInvalidTransition), "got %v", err)
		})
	}

	t.Run("Unknown appointment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.usecase.SetAppointmentStatus(ctx, "missing", models.AppointmentStatusConfirmed)
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeAppointmentNotFound))
	})

	t.Run("Unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.usecase.SetAppointmentStatus(ctx, "missing", models.AppointmentStatus("archived"))
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeInvalidField))
	})

	t.Run("Confirming twice notifies once", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)

		_, err = f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusConfirmed)
		require.NoError(t, err)
		f.trigger.Wait()
		again, err := f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusConfirmed, again.Status)
		f.trigger.Wait()

		assert.Equal(t, 1, f.publisher.CountFor(created.ID, models.NotificationEventConfirmed))
	})

	t.Run("Concurrent confirmations notify once", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusConfirmed)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}
		f.trigger.Wait()

		assert.Equal(t, 1, f.publisher.CountFor(created.ID, models.NotificationEventConfirmed))
	})

	t.Run("Cancellation frees the slot", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)

		_, err = f.usecase.SetAppointmentStatus(ctx, created.ID, models.AppointmentStatusCancelled)
		require.NoError(t, err)

		check, err := f.availability.CheckAvailability(ctx, "2025-03-12", "10:00")
		require.NoError(t, err)
		assert.True(t, check.Available)

		rebooked, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "10:00"))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, rebooked.ID)
	})
}

func TestAppointmentUsecase_CancelAppointment(t *testing.T) {
	ctx := context.Background()
	owner := "user-1"

	setup := func(t *testing.T) (*fixture, *models.Appointment) {
		f := newFixture(t)
		request := candidate("2025-03-12", "10:00")
		request.OwnerRef = &owner
		created, err := f.usecase.CreateAppointment(ctx, request)
		require.NoError(t, err)
		return f, created
	}

	t.Run("Owner cancels", func(t *testing.T) {
		f, created := setup(t)

		cancelled, err := f.usecase.CancelAppointment(ctx, created.ID, requests.Actor{OwnerRef: owner})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)
	})

	t.Run("Operator cancels", func(t *testing.T) {
		f, created := setup(t)

		cancelled, err := f.usecase.CancelAppointment(ctx, created.ID, requests.Actor{Operator: true})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)
	})

	t.Run("Someone else is forbidden", func(t *testing.T) {
		f, created := setup(t)

		_, err := f.usecase.CancelAppointment(ctx, created.ID, requests.Actor{OwnerRef: "user-2"})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeForbidden))

		_, err = f.usecase.CancelAppointment(ctx, created.ID, requests.Actor{})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeForbidden))
	})

	t.Run("Anonymous bookings can only be cancelled by the operator", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.usecase.CreateAppointment(ctx, candidate("2025-03-12", "11:00"))
		require.NoError(t, err)

		_, err = f.usecase.CancelAppointment(ctx, created.ID, requests.Actor{OwnerRef: owner})
		assert.True(t, exceptions.HasCode(err, constvars.ErrCodeForbidden))
	})
}

func TestAppointmentUsecase_FindAppointmentsByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := "user-1"
	other := "user-2"

	tick := fixedNow
	f.store.Now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	for _, clock := range []string{"10:00", "10:30", "11:00"} {
		request := candidate("2025-03-12", clock)
		request.OwnerRef = &owner
		_, err := f.usecase.CreateAppointment(ctx, request)
		require.NoError(t, err)
	}
	request := candidate("2025-03-12", "11:30")
	request.OwnerRef = &other
	_, err := f.usecase.CreateAppointment(ctx, request)
	require.NoError(t, err)

	mine, err := f.usecase.FindAppointmentsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "11:00", mine[0].Time)
	assert.Equal(t, "10:00", mine[2].Time)

	none, err := f.usecase.FindAppointmentsByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
