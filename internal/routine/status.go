package routine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus     = errors.New("invalid routine status")
	ErrIllegalTransition = errors.New("illegal routine status transition")
)

type Status int

const (
	Created Status = iota
	Waiting
	Working
	Paused
	Stopped
	Finished
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Waiting:
		return "waiting"
	case Working:
		return "working"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Stopped || s == Finished
}

// Active reports whether the routine has been accepted and not yet settled.
func (s Status) Active() bool {
	return s == Waiting || s == Working
}

// ParseStatus accepts the names a running routine may move into. "created"
// is rejected because it is never re-entered.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "waiting":
		return Waiting, nil
	case "working":
		return Working, nil
	case "paused":
		return Paused, nil
	case "stopped":
		return Stopped, nil
	case "finished":
		return Finished, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// CanTransition is the complete transition table. Paused is reserved: no
// operation produces it yet, but a paused routine may resume or stop.
func CanTransition(from, to Status) bool {
	switch from {
	case Created:
		return to == Waiting
	case Waiting:
		return to == Working || to == Paused || to == Stopped
	case Working:
		return to == Finished || to == Paused || to == Stopped
	case Paused:
		return to == Waiting || to == Stopped
	case Stopped, Finished:
		return false
	default:
		return false
	}
}
