package models

// Clip represents a single recording returned by the cliplist command.
type Clip struct {
	Camera   string `json:"camera" mapstructure:"camera"`
	Path     string `json:"path" mapstructure:"path"`
	Res      string `json:"res" mapstructure:"res"`
	FileSize string `json:"filesize" mapstructure:"filesize"`
	FileType string `json:"filetype" mapstructure:"filetype"`
	Flags    int    `json:"flags" mapstructure:"flags"`
	Offset   int64  `json:"offset" mapstructure:"offset"`
	Date     int64  `json:"date" mapstructure:"date"` // Unix seconds
	Msec     int64  `json:"msec" mapstructure:"msec"`
	Color    int64  `json:"color" mapstructure:"color"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// GroupClipsByCamera buckets clips by their camera short name.
func GroupClipsByCamera(clips []Clip) map[string][]Clip {
	grouped := make(map[string][]Clip)
	for _, c := range clips {
		grouped[c.Camera] = append(grouped[c.Camera], c)
	}
	return grouped
}
