package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Signal is the traffic-light state of the server.
// The ordinals are the values the status command sends and returns.
type Signal int

const (
	SignalRed Signal = iota
	SignalGreen
	SignalYellow
)

var signalNames = [...]string{"red", "green", "yellow"}

func (s Signal) String() string {
	if s.Valid() {
		return signalNames[s]
	}
	return "signal(" + strconv.Itoa(int(s)) + ")"
}

func (s Signal) Valid() bool {
	return s >= SignalRed && s <= SignalYellow
}

// ParseSignal accepts either a signal name (red, green, yellow) or its
// numeric ordinal.
func ParseSignal(v string) (Signal, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range signalNames {
		if v == name {
			return Signal(i), nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && Signal(n).Valid() {
		return Signal(n), nil
	}
	return 0, fmt.Errorf("unknown signal %q (valid: %s)", v, strings.Join(signalNames[:], ", "))
}

// PauseConfig is the value of the status command's pause parameter.
type PauseConfig int

const (
	PauseIndefinitely PauseConfig = -1
	PauseResume       PauseConfig = 0
	Pause30Seconds    PauseConfig = 1
	Pause1Minute      PauseConfig = 2
	Pause1Hour        PauseConfig = 3
)

var pauseNames = map[PauseConfig]string{
	PauseIndefinitely: "indefinitely",
	PauseResume:       "resume",
	Pause30Seconds:    "30s",
	Pause1Minute:      "1m",
	Pause1Hour:        "1h",
}

func (p PauseConfig) String() string {
	if name, ok := pauseNames[p]; ok {
		return name
	}
	return "pause(" + strconv.Itoa(int(p)) + ")"
}

func (p PauseConfig) Valid() bool {
	_, ok := pauseNames[p]
	return ok
}

// ParsePauseConfig accepts a pause name (indefinitely, resume, 30s, 1m, 1h)
// or its numeric value.
func ParsePauseConfig(v string) (PauseConfig, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for p, name := range pauseNames {
		if v == name {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(v); err == nil && PauseConfig(n).Valid() {
		return PauseConfig(n), nil
	}
	return 0, fmt.Errorf("unknown pause setting %q (valid: indefinitely, resume, 30s, 1m, 1h)", v)
}

// ScheduleLock is the schedule hold state reported by the status command.
type ScheduleLock int

const (
	ScheduleRun ScheduleLock = iota
	ScheduleTemporaryHold
	ScheduleHold
)

func (l ScheduleLock) String() string {
	switch l {
	case ScheduleRun:
		return "run"
	case ScheduleTemporaryHold:
		return "temporary hold"
	case ScheduleHold:
		return "hold"
	}
	return "lock(" + strconv.Itoa(int(l)) + ")"
}
