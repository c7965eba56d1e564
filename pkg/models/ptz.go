package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PTZCommand is the button code sent with the ptz command.
type PTZCommand int

const (
	PTZPanLeft PTZCommand = iota
	PTZPanRight
	PTZTiltUp
	PTZTiltDown
	PTZHome
	PTZZoomIn
	PTZZoomOut
)

const (
	ptzPresetBase = 100
	MaxPTZPreset  = 20
)

var ptzNames = [...]string{"left", "right", "up", "down", "home", "zoom_in", "zoom_out"}

// PTZPreset returns the command that moves to preset n (1-based).
func PTZPreset(n int) PTZCommand {
	return PTZCommand(ptzPresetBase + n)
}

// Preset returns the preset number and true if c is a go-to-preset command.
func (c PTZCommand) Preset() (int, bool) {
	n := int(c) - ptzPresetBase
	if n >= 1 && n <= MaxPTZPreset {
		return n, true
	}
	return 0, false
}

func (c PTZCommand) Valid() bool {
	if c >= PTZPanLeft && c <= PTZZoomOut {
		return true
	}
	_, ok := c.Preset()
	return ok
}

func (c PTZCommand) String() string {
	if c >= PTZPanLeft && c <= PTZZoomOut {
		return ptzNames[c]
	}
	if n, ok := c.Preset(); ok {
		return "preset" + strconv.Itoa(n)
	}
	return "ptz(" + strconv.Itoa(int(c)) + ")"
}

// ParsePTZCommand accepts an action name (left, right, up, down, home,
// zoom_in, zoom_out), a preset in the form "preset3", or a raw button code.
func ParsePTZCommand(v string) (PTZCommand, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range ptzNames {
		if v == name {
			return PTZCommand(i), nil
		}
	}
	if rest, ok := strings.CutPrefix(v, "preset"); ok {
		n, err := strconv.Atoi(strings.TrimLeft(rest, ":-_ "))
		if err == nil && n >= 1 && n <= MaxPTZPreset {
			return PTZPreset(n), nil
		}
		return 0, fmt.Errorf("invalid PTZ preset %q (valid: preset1 to preset%d)", v, MaxPTZPreset)
	}
	if n, err := strconv.Atoi(v); err == nil && PTZCommand(n).Valid() {
		return PTZCommand(n), nil
	}
	return 0, fmt.Errorf("unknown PTZ command %q (valid: %s, presetN)", v, strings.Join(ptzNames[:], ", "))
}
