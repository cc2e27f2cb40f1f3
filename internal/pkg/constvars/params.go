package constvars

const (
	URLParamAppointmentID = "appointment_id"
	URLParamDate          = "date"
)

const (
	URLQueryYear      = "year"
	URLQueryMonth     = "month"
	URLQueryDate      = "date"
	URLQueryTime      = "time"
	URLQueryStartDate = "start"
	URLQueryEndDate   = "end"
)
