package constvars

const (
	// Generic messages
	ResponseSuccess = "success"

	// Availability messages
	GetMonthlyAvailabilitySuccessMessage = "get monthly availability successfully"
	GetAvailabilitySuccessMessage        = "get availability successfully"
	GetDateAvailabilitySuccessMessage    = "get date availability successfully"
	CheckAvailabilitySuccessMessage      = "check availability successfully"
	GetSlotsSuccessMessage               = "get slots successfully"

	// Appointment messages
	CreateAppointmentSuccessMessage       = "appointment created successfully"
	GetAppointmentSuccessMessage          = "get appointment successfully"
	GetMyAppointmentsSuccessMessage       = "get appointments successfully"
	UpdateAppointmentStatusSuccessMessage = "appointment status updated successfully"
	CancelAppointmentSuccessMessage       = "appointment cancelled successfully"

	HealthCheckSuccessMessage = "service is healthy"
)
