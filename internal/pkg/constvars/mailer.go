package constvars

const (
	EmailAppointmentCreatedSubject        = "We received your booking request for %s at %s"
	EmailAppointmentConfirmedSubject      = "Your appointment on %s at %s is confirmed"
	EmailAdminAppointmentCreatedSubject   = "[Booking] New request %s %s from %s"
	EmailAdminAppointmentConfirmedSubject = "[Booking] Confirmed %s %s for %s"
	EmailCalendarAttachmentName           = "appointment.ics"
	EmailCalendarProductID                = "-//booking-service//appointments//EN"
)
