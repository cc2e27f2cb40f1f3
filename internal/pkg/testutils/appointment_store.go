package testutils

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// AppointmentStore is an in-memory AppointmentRepository that enforces the
// same unique active slot key as the Mongo partial index.
type AppointmentStore struct {
	mu    sync.Mutex
	docs  map[string]models.Appointment
	slots map[string]string

	// FindErr, when set, fails every read.
	FindErr error
	// InsertErr, when set, fails every insert.
	InsertErr error
	// ClaimErr, when set, fails every notification claim.
	ClaimErr error

	Now func() time.Time
}

var _ contracts.AppointmentRepository = (*AppointmentStore)(nil)

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		docs:  make(map[string]models.Appointment),
		slots: make(map[string]string),
		Now:   time.Now,
	}
}

// Seed stores appointments as given, bypassing the slot uniqueness check.
func (s *AppointmentStore) Seed(appointments ...models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range appointments {
		if a.Status.IsActive() && a.SlotKey == "" {
			a.SlotKey = models.BuildSlotKey(a.Date, a.Time)
		}
		s.docs[a.ID] = a
		if a.SlotKey != "" {
			s.slots[a.SlotKey] = a.ID
		}
	}
}

func (s *AppointmentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *AppointmentStore) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (s *AppointmentStore) Insert(ctx context.Context, appointment *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.InsertErr != nil {
		return exceptions.ErrMongoDBInsertDocument(s.InsertErr)
	}
	if _, exists := s.docs[appointment.ID]; exists {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("duplicate _id %s", appointment.ID))
	}
	if appointment.SlotKey != "" {
		if _, taken := s.slots[appointment.SlotKey]; taken {
			return exceptions.ErrSlotTaken(errors.New("duplicate slotKey"), appointment.Date, appointment.Time)
		}
		s.slots[appointment.SlotKey] = appointment.ID
	}

	appointment.SetCreatedAtUpdatedAt(s.Now().UTC())
	s.docs[appointment.ID] = *appointment
	return nil
}

func (s *AppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return nil, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *AppointmentStore) FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return nil, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	var out []models.Appointment
	for _, doc := range s.docs {
		if doc.Date >= startDate && doc.Date <= endDate {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *AppointmentStore) FindActiveBySlot(ctx context.Context, date, clock string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return nil, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	var out []models.Appointment
	for _, doc := range s.docs {
		if doc.Date == date && doc.Time == clock && doc.Status.IsActive() {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *AppointmentStore) FindByOwner(ctx context.Context, ownerRef string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return nil, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	var out []models.Appointment
	for _, doc := range s.docs {
		if doc.OwnerRef != nil && *doc.OwnerRef == ownerRef {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *AppointmentStore) LatestUpdateInRange(ctx context.Context, startDate, endDate string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return time.Time{}, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	var latest time.Time
	for _, doc := range s.docs {
		if doc.Date >= startDate && doc.Date <= endDate && doc.UpdatedAt.After(latest) {
			latest = doc.UpdatedAt
		}
	}
	return latest, nil
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok || doc.Status != from {
		return nil, nil
	}
	doc.Status = to
	doc.SetUpdatedAt(at)
	if !to.IsActive() && doc.SlotKey != "" {
		if s.slots[doc.SlotKey] == doc.ID {
			delete(s.slots, doc.SlotKey)
		}
		doc.SlotKey = ""
	}
	s.docs[id] = doc
	return &doc, nil
}

func (s *AppointmentStore) ClaimNotification(ctx context.Context, id string, event models.NotificationEvent, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClaimErr != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(s.ClaimErr)
	}
	doc, ok := s.docs[id]
	if !ok || doc.NotificationMarker(event) != nil {
		return false, nil
	}
	claimedAt := at
	switch event {
	case models.NotificationEventCreated:
		doc.NotifiedAt = &claimedAt
	case models.NotificationEventConfirmed:
		doc.ConfirmationNotifiedAt = &claimedAt
	default:
		return false, nil
	}
	s.docs[id] = doc
	return true, nil
}

func (s *AppointmentStore) ReleaseNotification(ctx context.Context, id string, event models.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	switch event {
	case models.NotificationEventCreated:
		doc.NotifiedAt = nil
	case models.NotificationEventConfirmed:
		doc.ConfirmationNotifiedAt = nil
	}
	s.docs[id] = doc
	return nil
}

func (s *AppointmentStore) FindPendingNotifications(ctx context.Context, event models.NotificationEvent, olderThan time.Time, limit int) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FindErr != nil {
		return nil, exceptions.ErrMongoDBFindDocument(s.FindErr)
	}
	var out []models.Appointment
	for _, doc := range s.docs {
		if doc.NotificationMarker(event) != nil {
			continue
		}
		switch event {
		case models.NotificationEventCreated:
			if doc.Status == models.AppointmentStatusCancelled || !doc.CreatedAt.Before(olderThan) {
				continue
			}
		case models.NotificationEventConfirmed:
			if doc.Status != models.AppointmentStatusConfirmed || !doc.UpdatedAt.Before(olderThan) {
				continue
			}
		default:
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
