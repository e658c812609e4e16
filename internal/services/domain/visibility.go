package domain

import "time"

// OperadorKinds is the status-kind allow-list for field operators.
// Programado services are not yet dispatched to a route and stay
// invisible to them.
var OperadorKinds = []StatusKind{KindAsignado, KindSurtido, KindCancelado}

// OperadorMaySee reports whether the kind is on the operator allow-list.
func OperadorMaySee(kind StatusKind) bool {
	for _, k := range OperadorKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DayWindow is a half-open local-time interval [From, To) over
// fecha_programado.
type DayWindow struct {
	From time.Time
	To   time.Time
}

// Today returns the window covering the server-local day of now.
func Today(now time.Time) DayWindow {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return DayWindow{From: midnight, To: midnight.Add(24 * time.Hour)}
}

// Yesterday returns the window covering the server-local day before now.
func Yesterday(now time.Time) DayWindow {
	today := Today(now)
	return DayWindow{From: today.From.Add(-24 * time.Hour), To: today.From}
}

// OnDate returns the window covering the given local calendar date.
// The raw value must be YYYY-MM-DD.
func OnDate(raw string, loc *time.Location) (DayWindow, error) {
	day, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return DayWindow{}, err
	}
	return DayWindow{From: day, To: day.Add(24 * time.Hour)}, nil
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}
