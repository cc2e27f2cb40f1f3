package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// CalendarBlock is a bookable window. Start is inclusive and End exclusive,
// both as HH:MM. Days limits the block to some weekdays; empty means every
// open weekday.
type CalendarBlock struct {
	Name  string   `yaml:"name" json:"name"`
	Start string   `yaml:"start" json:"start"`
	End   string   `yaml:"end" json:"end"`
	Days  []string `yaml:"days,omitempty" json:"days,omitempty"`
}

// BusinessCalendar is the slot grid and closure rules of the business.
type BusinessCalendar struct {
	Blocks          []CalendarBlock `yaml:"blocks" json:"blocks"`
	StepMinutes     int             `yaml:"step_minutes" json:"step_minutes"`
	ClosedWeekdays  []string        `yaml:"closed_weekdays" json:"closed_weekdays"`
	Holidays        []string        `yaml:"holidays" json:"holidays"`
	Services        map[string]int  `yaml:"services" json:"services"`
	MaxParticipants int             `yaml:"max_participants" json:"max_participants"`
}

func DefaultBusinessCalendar() *BusinessCalendar {
	return &BusinessCalendar{
		Blocks: []CalendarBlock{
			{Name: "morning", Start: "09:30", End: "13:00"},
			{Name: "evening", Start: "15:00", End: "21:00"},
		},
		StepMinutes:    30,
		ClosedWeekdays: []string{"saturday", "sunday"},
		Holidays:       []string{},
		Services: map[string]int{
			"express":  30,
			"complete": 60,
		},
		MaxParticipants: 6,
	}
}

// Normalize fills zero values from the default calendar so partial files work.
// An explicit empty closed_weekdays list is kept as is.
func (c *BusinessCalendar) Normalize() {
	defaults := DefaultBusinessCalendar()
	if len(c.Blocks) == 0 {
		c.Blocks = defaults.Blocks
	}
	if c.StepMinutes <= 0 {
		c.StepMinutes = defaults.StepMinutes
	}
	if c.ClosedWeekdays == nil {
		c.ClosedWeekdays = defaults.ClosedWeekdays
	}
	if c.Holidays == nil {
		c.Holidays = []string{}
	}
	if len(c.Services) == 0 {
		c.Services = defaults.Services
	}
	if c.MaxParticipants <= 0 {
		c.MaxParticipants = defaults.MaxParticipants
	}
}

// LoadBusinessCalendar reads the YAML calendar at path. An empty path or a
// missing file yields the default calendar.
func LoadBusinessCalendar(path string) (*BusinessCalendar, error) {
	if path == "" {
		return DefaultBusinessCalendar(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultBusinessCalendar(), nil
		}
		return nil, err
	}

	var calendar BusinessCalendar
	if err := yaml.Unmarshal(data, &calendar); err != nil {
		return nil, err
	}
	calendar.Normalize()

	return &calendar, nil
}
