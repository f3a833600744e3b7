package update

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/storage"
	"github.com/lazybuster/lazybuster/internal/views"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.Settings.NotificationsEnabled = !m.Settings.NotificationsEnabled
		m.saveAppSettings()
		m.Status = StatusBar{Text: "notifications " + onOffStatus(m.Settings.NotificationsEnabled)}
	case "s":
		m.Settings.SoundEnabled = !m.Settings.SoundEnabled
		m.saveAppSettings()
		m.Status = StatusBar{Text: "sound " + onOffStatus(m.Settings.SoundEnabled)}
	case "b":
		m.Settings.AutoStartBreaks = !m.Settings.AutoStartBreaks
		m.engine.SetAutoStartBreaks(m.Settings.AutoStartBreaks)
		m.saveAppSettings()
		m.Status = StatusBar{Text: "auto-start breaks " + onOffStatus(m.Settings.AutoStartBreaks)}
	case "m":
		m.Settings.DarkMode = !m.Settings.DarkMode
		m.saveAppSettings()
		m.Status = StatusBar{Text: "dark mode " + onOffStatus(m.Settings.DarkMode)}
	case "f":
		m.Settings.RealityCheckFrequency = nextFrequency(m.Settings.RealityCheckFrequency)
		m.saveAppSettings()
		m.Status = StatusBar{Text: "reality checks: " + string(m.Settings.RealityCheckFrequency)}
	case "ctrl+x":
		if err := m.kv.RemoveAll(m.ctx, storage.AllKeys()); err != nil {
			m.Status = StatusBar{Text: "reset failed: " + err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "all data cleared, restart to start fresh"}
	}
	return m, nil
}

func nextFrequency(f model.RealityCheckFrequency) model.RealityCheckFrequency {
	switch f {
	case model.RealityCheckDaily:
		return model.RealityCheckHourly
	case model.RealityCheckHourly:
		return model.RealityCheckOff
	default:
		return model.RealityCheckDaily
	}
}

func (m Model) saveAppSettings() {
	payload, err := json.Marshal(m.Settings)
	if err != nil {
		m.log.Error().Err(err).Msg("encode app settings")
		return
	}
	if err := m.kv.Set(m.ctx, storage.KeyAppSettings, string(payload)); err != nil {
		m.log.Error().Err(err).Msg("persist app settings")
	}
}

// realityCheckVisible applies the frequency setting to the last dismissal. A
// daily dismissal holds until the next calendar day, an hourly one for an hour.
func (m Model) realityCheckVisible(now time.Time) bool {
	switch m.Settings.RealityCheckFrequency {
	case model.RealityCheckOff:
		return false
	case model.RealityCheckHourly:
		return m.realityDismissedAt.IsZero() || now.Sub(m.realityDismissedAt) >= time.Hour
	default:
		return m.realityDismissedAt.IsZero() || !model.SameDay(m.realityDismissedAt, now)
	}
}

func (m *Model) dismissRealityCheck() {
	m.realityDismissedAt = m.now()
	if err := m.kv.Set(m.ctx, storage.KeyRealityCheckDismiss, m.realityDismissedAt.Format(time.RFC3339)); err != nil {
		m.log.Error().Err(err).Msg("persist reality check dismissal")
	}
	m.Status = StatusBar{Text: "reality check dismissed"}
}

func (m Model) renderSettingsView() string {
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Notifications: m.Settings.NotificationsEnabled,
		Sound:         m.Settings.SoundEnabled,
		AutoBreaks:    m.Settings.AutoStartBreaks,
		RealityCheck:  string(m.Settings.RealityCheckFrequency),
		DarkMode:      m.Settings.DarkMode,
	})
}

func onOffStatus(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
