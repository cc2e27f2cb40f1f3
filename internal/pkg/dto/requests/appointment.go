package requests

type Customer struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=32"`
}

type CreateAppointment struct {
	Date             string   `json:"date" validate:"required,iso_date"`
	Time             string   `json:"time" validate:"required,clock_time"`
	Customer         Customer `json:"customer"`
	ServiceKind      string   `json:"serviceKind" validate:"required"`
	ParticipantCount int      `json:"participantCount" validate:"min=1"`
	Notes            string   `json:"notes" validate:"max=1000"`

	// OwnerRef is taken from the verified bearer token, never from the body.
	OwnerRef *string `json:"-"`
}

type UpdateAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// Actor identifies who is asking for a lifecycle change.
type Actor struct {
	Operator bool
	OwnerRef string
}
