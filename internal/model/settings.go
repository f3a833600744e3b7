package model

type RealityCheckFrequency string

const (
	RealityCheckOff    RealityCheckFrequency = "off"
	RealityCheckDaily  RealityCheckFrequency = "daily"
	RealityCheckHourly RealityCheckFrequency = "hourly"
)

// AppSettings are the user-facing toggles persisted under their own key.
type AppSettings struct {
	DarkMode              bool                  `json:"darkMode"`
	NotificationsEnabled  bool                  `json:"notificationsEnabled"`
	SoundEnabled          bool                  `json:"soundEnabled"`
	AutoStartBreaks       bool                  `json:"autoStartBreaks"`
	RealityCheckFrequency RealityCheckFrequency `json:"realityCheckFrequency"`
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		DarkMode:              false,
		NotificationsEnabled:  true,
		SoundEnabled:          true,
		AutoStartBreaks:       false,
		RealityCheckFrequency: RealityCheckDaily,
	}
}
