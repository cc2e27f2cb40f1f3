package contracts

import "time"

type SlotCatalog interface {
	SlotsFor(date time.Time) []string
	IsClosed(date time.Time) bool
	Offers(date time.Time, clock string) bool
	ServiceDuration(kind string) (int, bool)
	MaxParticipants() int
	Location() *time.Location
	ParseDate(value string) (time.Time, error)
}
