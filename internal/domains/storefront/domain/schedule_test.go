package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-14 is a Friday.
func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-06-14 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduleWithFriday(day DaySchedule) Schedule {
	s := DefaultSchedule()
	s.Days[Friday] = day
	return s
}

func TestIsOpenAt_WindowCrossingMidnight(t *testing.T) {
	s := scheduleWithFriday(DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "02:00"})

	assert.True(t, s.IsOpenAt(at("23:30")))
	assert.True(t, s.IsOpenAt(at("01:00")))
	assert.False(t, s.IsOpenAt(at("05:00")))
	assert.False(t, s.IsOpenAt(at("17:59")))
}

func TestIsOpenAt_SameDayWindowIsInclusive(t *testing.T) {
	s := scheduleWithFriday(DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "23:00"})

	assert.True(t, s.IsOpenAt(at("18:00")))
	assert.True(t, s.IsOpenAt(at("23:00")))
	assert.False(t, s.IsOpenAt(at("23:01")))
	assert.False(t, s.IsOpenAt(at("12:00")))
}

func TestIsOpenAt_Flags(t *testing.T) {
	s := DefaultSchedule()
	s.IsOpen = false
	assert.False(t, s.IsOpenAt(at("19:00")))

	s = scheduleWithFriday(DaySchedule{IsOpen: false, OpenTime: "18:00", CloseTime: "23:00"})
	assert.False(t, s.IsOpenAt(at("19:00")))

	s = DefaultSchedule()
	delete(s.Days, Friday)
	assert.False(t, s.IsOpenAt(at("19:00")))
}

func TestIsOpenAt_MalformedTimeFailsClosed(t *testing.T) {
	for _, bad := range []string{"", "18", "25:00", "18:75", "ab:cd", "18:0"} {
		s := scheduleWithFriday(DaySchedule{IsOpen: true, OpenTime: bad, CloseTime: "23:00"})
		assert.False(t, s.IsOpenAt(at("19:00")), "open time %q", bad)
	}
}

func TestActiveWindow(t *testing.T) {
	s := scheduleWithFriday(DaySchedule{IsOpen: true, OpenTime: "18:00", CloseTime: "02:00"})

	w, ok := s.ActiveWindow(at("20:15"))
	require.True(t, ok)
	assert.Equal(t, Friday, w.Day)
	assert.Equal(t, 18*60, w.OpenMinutes)
	assert.Equal(t, 2*60, w.CloseMinutes)
	assert.True(t, w.CrossesMidnight)
	assert.Equal(t, "02:00", FormatClock(w.CloseMinutes))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultSchedule().Validate())

	s := scheduleWithFriday(DaySchedule{IsOpen: true, OpenTime: "7pm", CloseTime: "23:00"})
	require.ErrorIs(t, s.Validate(), ErrInvalidTime)

	s = DefaultSchedule()
	s.Days["funday"] = DaySchedule{OpenTime: "10:00", CloseTime: "11:00"}
	require.ErrorIs(t, s.Validate(), ErrUnknownWeekday)
}
