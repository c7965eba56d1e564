package models

// Alert represents a single entry from the alertlist command.
type Alert struct {
	Camera string `json:"camera" mapstructure:"camera"`
	Path   string `json:"path" mapstructure:"path"`
	Clip   string `json:"clip" mapstructure:"clip"`
	Res    string `json:"res" mapstructure:"res"`
	Zones  int    `json:"zones" mapstructure:"zones"`
	Flags  int    `json:"flags" mapstructure:"flags"`
	Offset int64  `json:"offset" mapstructure:"offset"`
	Date   int64  `json:"date" mapstructure:"date"` // Unix seconds
	Color  int64  `json:"color" mapstructure:"color"`

	Extra map[string]interface{} `json:"-" mapstructure:",remain"`
}

// GroupAlertsByCamera buckets alerts by their camera short name, preserving
// the order the server returned them in.
func GroupAlertsByCamera(alerts []Alert) map[string][]Alert {
	grouped := make(map[string][]Alert)
	for _, a := range alerts {
		grouped[a.Camera] = append(grouped[a.Camera], a)
	}
	return grouped
}
