package models

// UnknownName is used when the server omits a name field.
const UnknownName = "noname"

// UndefinedProfile is reported when the server has no active profile.
const UndefinedProfile = "Undefined"

// Status is the snapshot returned by the status command.
type Status struct {
	Profile  int          `json:"profile" mapstructure:"profile"`
	Signal   Signal       `json:"signal" mapstructure:"signal"`
	Lock     ScheduleLock `json:"lock" mapstructure:"lock"`
	Schedule string       `json:"schedule" mapstructure:"schedule"`
	Paused   int          `json:"pause" mapstructure:"pause"`
	Clips    string       `json:"clips" mapstructure:"clips"`
	Warnings int          `json:"warnings" mapstructure:"warnings"`
	Alerts   int          `json:"alerts" mapstructure:"alerts"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// SessionInfo holds the attributes returned by a successful login.
type SessionInfo struct {
	SystemName   string   `json:"systemName" mapstructure:"system name"`
	Version      string   `json:"version" mapstructure:"version"`
	Profiles     []string `json:"profiles" mapstructure:"profiles"`
	Schedules    []string `json:"schedules" mapstructure:"schedules"`
	Admin        bool     `json:"admin" mapstructure:"admin"`
	PTZAllowed   bool     `json:"ptz" mapstructure:"ptz"`
	ClipsAllowed bool     `json:"clips" mapstructure:"clips"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// Sysconfig is the global configuration returned by the sysconfig command.
type Sysconfig struct {
	Archive  bool `json:"archive" mapstructure:"archive"`
	Schedule bool `json:"schedule" mapstructure:"schedule"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}
