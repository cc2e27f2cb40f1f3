package mailer

import (
	"booking-service/internal/app/models"
	"booking-service/internal/pkg/constvars"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

type calendarInviteInput struct {
	Appointment     models.Appointment
	Location        *time.Location
	Organizer       string
	BusinessName    string
	BusinessAddress string
	Now             time.Time
}

// buildCalendarInvite renders a single-event REQUEST calendar for a confirmed
// appointment. The appointment id doubles as the event UID so a resent invite
// updates the same calendar entry.
func buildCalendarInvite(in calendarInviteInput) ([]byte, error) {
	start, err := in.Appointment.StartsAt(in.Location)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(in.Appointment.DurationMinutes) * time.Minute)

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodRequest)
	calendar.SetProductId(constvars.EmailCalendarProductID)

	event := calendar.AddEvent(in.Appointment.ID)
	event.SetDtStampTime(in.Now.UTC())
	event.SetCreatedTime(in.Appointment.CreatedAt.UTC())
	event.SetStartAt(start.UTC())
	event.SetEndAt(end.UTC())
	event.SetStatus(ics.ObjectStatusConfirmed)
	event.SetSummary(fmt.Sprintf("%s · %s", in.BusinessName, in.Appointment.ServiceKind))
	event.SetDescription(fmt.Sprintf("%d participant(s). Reference %s", in.Appointment.ParticipantCount, in.Appointment.ID))
	if in.BusinessAddress != "" {
		event.SetLocation(in.BusinessAddress)
	}
	if in.Organizer != "" {
		event.SetOrganizer("mailto:" + in.Organizer)
	}
	event.AddAttendee("mailto:" + in.Appointment.Customer.Email)

	return []byte(calendar.Serialize()), nil
}
