package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday names a day of the week the way the storefront settings store it.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is indexed by time.Weekday.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

const DefaultClosedMessage = "Estamos fechados no momento. Volte no nosso horário de funcionamento!"

var (
	ErrInvalidTime    = errors.New("time must use HH:MM format")
	ErrUnknownWeekday = errors.New("unknown weekday")
)

// WeekdayOf maps a time.Weekday to its schedule name.
func WeekdayOf(d time.Weekday) Weekday {
	return Weekdays[int(d)%7]
}

// DaySchedule is the opening window configured for a single weekday.
type DaySchedule struct {
	IsOpen    bool
	OpenTime  string
	CloseTime string
}

// Schedule is the weekly operating configuration of the storefront.
type Schedule struct {
	IsOpen        bool
	ClosedMessage string
	Days          map[Weekday]DaySchedule
}

// Window is a resolved opening window in minutes since midnight.
type Window struct {
	Day             Weekday
	OpenMinutes     int
	CloseMinutes    int
	CrossesMidnight bool
}

// DefaultSchedule opens every evening from 18:00 to 23:00.
func DefaultSchedule() Schedule {
	days := make(map[Weekday]DaySchedule, len(Weekdays))
	for _, d := range Weekdays {
		days[d] = DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "23:00"}
	}
	return Schedule{IsOpen: true, ClosedMessage: DefaultClosedMessage, Days: days}
}

// IsOpenAt reports whether the storefront accepts orders at t. Any malformed
// time string makes the answer "closed".
func (s Schedule) IsOpenAt(t time.Time) bool {
	_, ok := s.ActiveWindow(t)
	return ok
}

// ActiveWindow returns the window of t's weekday when t falls inside it.
func (s Schedule) ActiveWindow(t time.Time) (Window, bool) {
	if !s.IsOpen {
		return Window{}, false
	}
	day := WeekdayOf(t.Weekday())
	entry, ok := s.Days[day]
	if !ok || !entry.IsOpen {
		return Window{}, false
	}
	open, err := ParseClock(entry.OpenTime)
	if err != nil {
		return Window{}, false
	}
	closing, err := ParseClock(entry.CloseTime)
	if err != nil {
		return Window{}, false
	}
	current := t.Hour()*60 + t.Minute()
	w := Window{Day: day, OpenMinutes: open, CloseMinutes: closing, CrossesMidnight: closing < open}
	if w.CrossesMidnight {
		return w, current >= open || current <= closing
	}
	return w, open <= current && current <= closing
}

// Validate checks every configured day for well-formed times.
func (s Schedule) Validate() error {
	for day, entry := range s.Days {
		if !isKnownWeekday(day) {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, day)
		}
		if _, err := ParseClock(entry.OpenTime); err != nil {
			return fmt.Errorf("%s open: %w", day, err)
		}
		if _, err := ParseClock(entry.CloseTime); err != nil {
			return fmt.Errorf("%s close: %w", day, err)
		}
	}
	return nil
}

// ParseClock converts HH:MM into minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func isKnownWeekday(day Weekday) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
