package domain

import (
	"fmt"
	"strings"
)

// Status enumerates order progression.
type Status string

const (
	StatusNew        Status = "new"
	StatusAccepted   Status = "accepted"
	StatusProduction Status = "production"
	StatusDelivery   Status = "delivery"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var forward = map[Status]Status{
	StatusNew:        StatusAccepted,
	StatusAccepted:   StatusProduction,
	StatusProduction: StatusDelivery,
	StatusDelivery:   StatusCompleted,
}

// NextStatus returns the single successor of s. Terminal states have none.
func NextStatus(s Status) (Status, bool) {
	next, ok := forward[s]
	return next, ok
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusAccepted, StatusProduction, StatusDelivery, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Notifies reports whether entering s produces a customer notification.
func (s Status) Notifies() bool {
	switch s {
	case StatusAccepted, StatusProduction, StatusDelivery, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes an external status token. It accepts any letter case
// and surrounding whitespace, and "canceled" as an alias of cancelled.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "canceled" {
		s = StatusCancelled
	}
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Transition validates a requested move against the state machine.
func Transition(from, to Status) error {
	if from.Terminal() {
		return &AlreadyTerminalError{Status: from, Action: "move"}
	}
	if to == StatusCancelled {
		return nil
	}
	if next, _ := NextStatus(from); next != to {
		return &IllegalTransitionError{From: from, To: to}
	}
	return nil
}
