package slot

import (
	"booking-service/internal/app/config"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clock is a local wall time in minutes since midnight. 24:00 is allowed as
// the end of a window.
type clock int

const endOfDay clock = 24 * 60

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// parseClock accepts HH:MM or HH.MM.
func parseClock(s string) (clock, bool) {
	hh, mm, found := strings.Cut(strings.ReplaceAll(strings.TrimSpace(s), ".", ":"), ":")
	if !found || strings.Contains(mm, ":") {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	c := clock(h*60 + m)
	if c > endOfDay {
		return 0, false
	}
	return c, true
}

// dayWindow is the half-open range [Start, End) of one opening block.
type dayWindow struct {
	Start clock
	End   clock
}

// weeklyPlan holds the opening windows indexed by time.Weekday.
type weeklyPlan [7][]dayWindow

func (wp *weeklyPlan) add(wd time.Weekday, w dayWindow) {
	wp[wd] = append(wp[wd], w)
}

func (wp *weeklyPlan) on(wd time.Weekday) []dayWindow {
	return wp[wd]
}

var allWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

var dayTokens = map[string][]time.Weekday{
	"mon": {time.Monday}, "monday": {time.Monday},
	"tue": {time.Tuesday}, "tues": {time.Tuesday}, "tuesday": {time.Tuesday},
	"wed": {time.Wednesday}, "wednesday": {time.Wednesday},
	"thu": {time.Thursday}, "thur": {time.Thursday}, "thurs": {time.Thursday}, "thursday": {time.Thursday},
	"fri": {time.Friday}, "friday": {time.Friday},
	"sat": {time.Saturday}, "saturday": {time.Saturday},
	"sun": {time.Sunday}, "sunday": {time.Sunday},
	"weekdays": {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	"weekend":  {time.Saturday, time.Sunday},
}

func mapDayToken(s string) []time.Weekday {
	return dayTokens[strings.ToLower(strings.TrimSpace(s))]
}

// buildWeeklyPlan maps calendar blocks onto weekdays. A block without days
// applies to the whole week. The first invalid block aborts the build.
func buildWeeklyPlan(blocks []config.CalendarBlock) (*weeklyPlan, error) {
	plan := &weeklyPlan{}
	for i, b := range blocks {
		if b.Start == "" || b.End == "" {
			return nil, fmt.Errorf("blocks[%d]: missing start/end time", i)
		}
		start, ok := parseClock(b.Start)
		if !ok || start == endOfDay {
			return nil, fmt.Errorf("blocks[%d]: invalid start time '%s'", i, b.Start)
		}
		end, ok := parseClock(b.End)
		if !ok {
			return nil, fmt.Errorf("blocks[%d]: invalid end time '%s'", i, b.End)
		}
		if start >= end {
			return nil, fmt.Errorf("blocks[%d]: start >= end (%s >= %s)", i, start, end)
		}

		days := allWeekdays
		if len(b.Days) > 0 {
			days = nil
			for _, tok := range b.Days {
				mapped := mapDayToken(tok)
				if len(mapped) == 0 {
					return nil, fmt.Errorf("blocks[%d]: unknown day token '%s'", i, tok)
				}
				days = append(days, mapped...)
			}
		}
		for _, wd := range days {
			plan.add(wd, dayWindow{Start: start, End: end})
		}
	}
	return plan, nil
}
