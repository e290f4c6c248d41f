package sim

import (
	"fmt"
	"time"
)

// lunchHourOffset marks which break offset gets the lunch duration.
const lunchHourOffset = 4

// clockTime is a time-of-day, minute resolution.
type clockTime struct {
	Hour   int
	Minute int
}

// parseClock parses a "HH:MM" time-of-day string. Trailing text and
// out-of-range components are rejected.
func parseClock(s string) (clockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return clockTime{}, fmt.Errorf("invalid time of day %q, expected HH:MM: %w", s, err)
	}
	return clockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// at anchors the time-of-day onto a calendar day.
func (ct clockTime) at(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), ct.Hour, ct.Minute, 0, 0, day.Location())
}

// BreakWindow is a scheduled non-productive interval within a shift.
type BreakWindow struct {
	Start time.Time
	End   time.Time
	Lunch bool
}

// Contains reports whether t falls inside the half-open window [Start, End).
func (w BreakWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ShiftInstance is a ShiftDef anchored to a concrete calendar day:
// absolute start and end instants plus the shift's break windows.
type ShiftInstance struct {
	Name           string
	Start          time.Time
	End            time.Time
	ActiveMachines int
	Breaks         []BreakWindow
}

// InstantiateShift computes a shift's absolute start/end instants on
// the given day and its break/lunch windows. An end time-of-day at or
// before the start denotes wraparound: the end lands on the next day.
// Deterministic: same inputs produce the same windows.
func InstantiateShift(def ShiftDef, day time.Time, shifts ShiftsConfig) (ShiftInstance, error) {
	startTOD, err := parseClock(def.StartTime)
	if err != nil {
		return ShiftInstance{}, fmt.Errorf("shift %q: %w", def.Name, err)
	}
	endTOD, err := parseClock(def.EndTime)
	if err != nil {
		return ShiftInstance{}, fmt.Errorf("shift %q: %w", def.Name, err)
	}

	start := startTOD.at(day)
	end := endTOD.at(day)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	inst := ShiftInstance{
		Name:           def.Name,
		Start:          start,
		End:            end,
		ActiveMachines: def.ActiveMachines,
	}
	for _, hour := range shifts.BreakAndLunchTimes {
		ws := start.Add(time.Duration(hour) * time.Hour)
		lunch := hour == lunchHourOffset
		minutes := shifts.BreakDurationMinutes
		if lunch {
			minutes = shifts.LunchDurationMinutes
		}
		inst.Breaks = append(inst.Breaks, BreakWindow{
			Start: ws,
			End:   ws.Add(time.Duration(minutes) * time.Minute),
			Lunch: lunch,
		})
	}
	return inst, nil
}

// breakAt returns the window containing t, if any.
func breakAt(windows []BreakWindow, t time.Time) (BreakWindow, bool) {
	for _, w := range windows {
		if w.Contains(t) {
			return w, true
		}
	}
	return BreakWindow{}, false
}
