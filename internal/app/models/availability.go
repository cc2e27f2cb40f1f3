package models

type DateAvailabilityStatus string

const (
	DateAvailabilityStatusClosed      DateAvailabilityStatus = "closed"
	DateAvailabilityStatusOpen        DateAvailabilityStatus = "open"
	DateAvailabilityStatusFullyBooked DateAvailabilityStatus = "fully_booked"
)

type TimeSlotAvailability struct {
	Time          string `json:"time"`
	IsAvailable   bool   `json:"isAvailable"`
	AppointmentID string `json:"appointmentId,omitempty"`
}

// DateAvailability is a read-time projection of one business date. A closed
// date has no slots at all, which keeps it apart from a fully booked one.
type DateAvailability struct {
	Date           string                 `json:"date"`
	Status         DateAvailabilityStatus `json:"status"`
	Closed         bool                   `json:"closed"`
	Past           bool                   `json:"past"`
	TotalSlots     int                    `json:"totalSlots"`
	AvailableSlots int                    `json:"availableSlots"`
	BookedSlots    int                    `json:"bookedSlots"`
	TimeSlots      []TimeSlotAvailability `json:"timeSlots"`
}

type SlotCheck struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	Offered       bool   `json:"offered"`
	Closed        bool   `json:"closed"`
	Available     bool   `json:"available"`
	ConflictCount int    `json:"conflictCount"`
}
