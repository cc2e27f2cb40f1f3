package slot

import (
	"booking-service/internal/app/config"
	"booking-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Catalog is the fixed grid of bookable times per business day together with
// the closure rules. It is immutable after construction and safe for
// concurrent use.
type Catalog struct {
	byWeekday       map[time.Weekday][]string
	closedWeekdays  map[time.Weekday]bool
	holidays        map[string]bool
	services        map[string]int
	maxParticipants int
	location        *time.Location
}

func NewCatalog(calendar *config.BusinessCalendar, location *time.Location) (*Catalog, error) {
	if calendar == nil {
		return nil, errors.New("business calendar is required")
	}
	if calendar.StepMinutes <= 0 {
		return nil, fmt.Errorf("invalid step_minutes: %d", calendar.StepMinutes)
	}
	if location == nil {
		location = time.UTC
	}

	plan, err := buildWeeklyPlan(calendar.Blocks)
	if err != nil {
		return nil, err
	}

	closed := make(map[time.Weekday]bool)
	for _, tok := range calendar.ClosedWeekdays {
		mapped := mapDayToken(tok)
		if len(mapped) == 0 {
			return nil, fmt.Errorf("closed_weekdays: unknown day token '%s'", tok)
		}
		for _, wd := range mapped {
			closed[wd] = true
		}
	}

	holidays := make(map[string]bool, len(calendar.Holidays))
	for _, h := range calendar.Holidays {
		if _, err := time.Parse(constvars.DateLayout, h); err != nil {
			return nil, fmt.Errorf("holidays: invalid date '%s'", h)
		}
		holidays[h] = true
	}

	services := make(map[string]int, len(calendar.Services))
	for kind, minutes := range calendar.Services {
		if minutes <= 0 {
			return nil, fmt.Errorf("services: invalid duration %d for '%s'", minutes, kind)
		}
		services[kind] = minutes
	}

	maxParticipants := calendar.MaxParticipants
	if maxParticipants <= 0 {
		maxParticipants = constvars.DefaultMaxParticipants
	}

	byWeekday := make(map[time.Weekday][]string, len(allWeekdays))
	for _, wd := range allWeekdays {
		byWeekday[wd] = expandWindows(plan.on(wd), calendar.StepMinutes)
	}

	return &Catalog{
		byWeekday:       byWeekday,
		closedWeekdays:  closed,
		holidays:        holidays,
		services:        services,
		maxParticipants: maxParticipants,
		location:        location,
	}, nil
}

// expandWindows emits every step-aligned start that still fits inside its
// window, merged across windows in ascending order.
func expandWindows(windows []dayWindow, step int) []string {
	seen := make(map[clock]bool)
	var starts []clock
	for _, w := range windows {
		for m := w.Start; m+clock(step) <= w.End; m += clock(step) {
			if !seen[m] {
				seen[m] = true
				starts = append(starts, m)
			}
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	slots := make([]string, 0, len(starts))
	for _, m := range starts {
		slots = append(slots, m.String())
	}
	return slots
}

// SlotsFor returns the ordered bookable times for date, or an empty list when
// the business is closed that day.
func (c *Catalog) SlotsFor(date time.Time) []string {
	if c.IsClosed(date) {
		return []string{}
	}
	slots := c.byWeekday[date.Weekday()]
	out := make([]string, len(slots))
	copy(out, slots)
	return out
}

// IsClosed reports a closed weekday, a holiday, or a day without any block.
func (c *Catalog) IsClosed(date time.Time) bool {
	if c.closedWeekdays[date.Weekday()] {
		return true
	}
	if c.holidays[date.Format(constvars.DateLayout)] {
		return true
	}
	return len(c.byWeekday[date.Weekday()]) == 0
}

// Offers reports whether clock is a catalog member for date.
func (c *Catalog) Offers(date time.Time, clock string) bool {
	if c.IsClosed(date) {
		return false
	}
	for _, s := range c.byWeekday[date.Weekday()] {
		if s == clock {
			return true
		}
	}
	return false
}

// ServiceDuration returns the duration in minutes of a recognized service kind.
func (c *Catalog) ServiceDuration(kind string) (int, bool) {
	minutes, ok := c.services[kind]
	return minutes, ok
}

func (c *Catalog) MaxParticipants() int {
	return c.maxParticipants
}

func (c *Catalog) Location() *time.Location {
	return c.location
}

// ParseDate parses a YYYY-MM-DD date in the business location.
func (c *Catalog) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, value, c.location)
}
