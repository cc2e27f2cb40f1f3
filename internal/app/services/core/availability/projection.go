package availability

import (
	"booking-service/internal/app/contracts"
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"time"
)

// occupancy maps date -> time -> appointment ids holding that slot.
type occupancy map[string]map[string][]string

// conflict is a date and time held by more than one active appointment.
type conflict struct {
	Date           string
	Time           string
	AppointmentIDs []string
}

// groupActive keeps the appointments that hold a slot, grouped by date and
// time. Appointments on closed dates or outside the catalog do not occupy any
// slot and are returned separately.
func groupActive(catalog contracts.SlotCatalog, appointments []models.Appointment) (occupancy, []models.Appointment) {
	occupied := make(occupancy)
	var stray []models.Appointment
	for _, a := range appointments {
		if !a.Status.IsActive() {
			continue
		}
		day, err := catalog.ParseDate(a.Date)
		if err != nil || !catalog.Offers(day, a.Time) {
			stray = append(stray, a)
			continue
		}
		if occupied[a.Date] == nil {
			occupied[a.Date] = make(map[string][]string)
		}
		occupied[a.Date][a.Time] = append(occupied[a.Date][a.Time], a.ID)
	}
	return occupied, stray
}

func (o occupancy) conflicts() []conflict {
	var out []conflict
	for date, byTime := range o {
		for clock, ids := range byTime {
			if len(ids) > 1 {
				out = append(out, conflict{Date: date, Time: clock, AppointmentIDs: ids})
			}
		}
	}
	return out
}

// stampPast sets Past on every date of availability relative to today. Cached
// snapshots outlive the day they were built on, so it runs on every read.
func stampPast(availability map[string]models.DateAvailability, today time.Time) {
	cutoff := today.Format(constvars.DateLayout)
	for date, day := range availability {
		day.Past = date < cutoff
		availability[date] = day
	}
}

// buildDateAvailability crosses the catalog of day with its occupied slots.
// A closed day has no slots and the "closed" status, never "fully_booked".
func buildDateAvailability(catalog contracts.SlotCatalog, day, today time.Time, booked map[string][]string) models.DateAvailability {
	date := day.Format(constvars.DateLayout)
	slots := catalog.SlotsFor(day)

	result := models.DateAvailability{
		Date:       date,
		Closed:     catalog.IsClosed(day),
		Past:       day.Before(today),
		TotalSlots: len(slots),
		TimeSlots:  make([]models.TimeSlotAvailability, 0, len(slots)),
	}

	for _, clock := range slots {
		slot := models.TimeSlotAvailability{Time: clock, IsAvailable: true}
		if ids := booked[clock]; len(ids) > 0 {
			slot.IsAvailable = false
			slot.AppointmentID = ids[0]
			result.BookedSlots++
		}
		result.TimeSlots = append(result.TimeSlots, slot)
	}
	result.AvailableSlots = result.TotalSlots - result.BookedSlots

	switch {
	case result.Closed:
		result.Status = models.DateAvailabilityStatusClosed
	case result.AvailableSlots == 0:
		result.Status = models.DateAvailabilityStatusFullyBooked
	default:
		result.Status = models.DateAvailabilityStatusOpen
	}
	return result
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
