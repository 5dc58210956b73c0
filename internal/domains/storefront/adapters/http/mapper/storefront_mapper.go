package mapper

import (
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
)

type DaySchedule struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Schedule is the transport shape of the weekly settings, keyed by weekday name.
type Schedule struct {
	IsOpen        bool                   `json:"isOpen"`
	ClosedMessage string                 `json:"closedMessage"`
	Days          map[string]DaySchedule `json:"days"`
}

type Window struct {
	Day             string `json:"day"`
	OpenTime        string `json:"openTime"`
	CloseTime       string `json:"closeTime"`
	CrossesMidnight bool   `json:"crossesMidnight"`
}

type Status struct {
	Open          bool    `json:"open"`
	ClosedMessage string  `json:"closedMessage,omitempty"`
	Window        *Window `json:"window,omitempty"`
}

func ToDomainSchedule(s Schedule) domain.Schedule {
	days := make(map[domain.Weekday]domain.DaySchedule, len(s.Days))
	for name, d := range s.Days {
		days[domain.Weekday(name)] = domain.DaySchedule{IsOpen: d.IsOpen, OpenTime: d.OpenTime, CloseTime: d.CloseTime}
	}
	return domain.Schedule{IsOpen: s.IsOpen, ClosedMessage: s.ClosedMessage, Days: days}
}

func FromDomainSchedule(s domain.Schedule) Schedule {
	days := make(map[string]DaySchedule, len(s.Days))
	for day, d := range s.Days {
		days[string(day)] = DaySchedule{IsOpen: d.IsOpen, OpenTime: d.OpenTime, CloseTime: d.CloseTime}
	}
	return Schedule{IsOpen: s.IsOpen, ClosedMessage: s.ClosedMessage, Days: days}
}

func FromStatus(s ports.Status) Status {
	out := Status{Open: s.Open, ClosedMessage: s.ClosedMessage}
	if s.Window != nil {
		out.Window = &Window{
			Day:             string(s.Window.Day),
			OpenTime:        domain.FormatClock(s.Window.OpenMinutes),
			CloseTime:       domain.FormatClock(s.Window.CloseMinutes),
			CrossesMidnight: s.Window.CrossesMidnight,
		}
	}
	return out
}
