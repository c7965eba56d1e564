package models

// Group entries returned by camlist that are not real cameras.
const (
	CameraIndex      = "index"
	CameraGroupIndex = "Index"
	CameraGroupAll   = "@Index"
)

// CameraOption represents a single entry of the camlist response.
// The option pair is what the web UI uses for its camera drop-down.
type CameraOption struct {
	Code        string `json:"optionValue" mapstructure:"optionValue"`
	DisplayName string `json:"optionDisplay" mapstructure:"optionDisplay"`
	Active      bool   `json:"active" mapstructure:"active"`
	Enabled     bool   `json:"isEnabled" mapstructure:"isEnabled"`
	Online      bool   `json:"isOnline" mapstructure:"isOnline"`
	Paused      bool   `json:"isPaused" mapstructure:"isPaused"`
	Recording   bool   `json:"isRecording" mapstructure:"isRecording"`
	Alerting    bool   `json:"isAlerting" mapstructure:"isAlerting"`
	Triggered   bool   `json:"isTriggered" mapstructure:"isTriggered"`
	NoSignal    bool   `json:"isNoSignal" mapstructure:"isNoSignal"`
	PTZ         bool   `json:"ptz" mapstructure:"ptz"`
	Audio       bool   `json:"audio" mapstructure:"audio"`

	FPS      float64 `json:"FPS" mapstructure:"FPS"`
	Width    int     `json:"width" mapstructure:"width"`
	Height   int     `json:"height" mapstructure:"height"`
	Triggers int     `json:"nTriggers" mapstructure:"nTriggers"`
	Clips    int     `json:"nClips" mapstructure:"nClips"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// IsGroup reports whether the option is a camera group rather than a camera.
func (c CameraOption) IsGroup() bool {
	return IsGroupCode(c.Code)
}

// IsGroupCode reports whether code names the all-cameras group.
func IsGroupCode(code string) bool {
	switch code {
	case CameraIndex, CameraGroupIndex, CameraGroupAll:
		return true
	}
	return false
}
