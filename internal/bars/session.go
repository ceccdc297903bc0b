package bars

import (
	"IntraPull/internal/calendar"
	"IntraPull/internal/domain/models"
)

// Default extended-hours window (pre-market through post-market), market time.
const (
	DefaultSessionOpenHour  = 4
	DefaultSessionCloseHour = 20
)

// SessionConfig bounds the extended-hours window, [OpenHour, CloseHour).
type SessionConfig struct {
	OpenHour  int `yaml:"open_hour"`
	CloseHour int `yaml:"close_hour"`
}

// FilterSession keeps bars inside the extended-hours window on actual trading
// days. Applied before resampling for sub-daily timeframes.
func FilterSession(in []models.Bar, cfg SessionConfig, cal *calendar.Calendar) []models.Bar {
	if cfg.CloseHour <= cfg.OpenHour {
		cfg = SessionConfig{OpenHour: DefaultSessionOpenHour, CloseHour: DefaultSessionCloseHour}
	}

	out := make([]models.Bar, 0, len(in))
	for _, b := range in {
		t := b.Time(cal.Location())
		if t.Hour() < cfg.OpenHour || t.Hour() >= cfg.CloseHour {
			continue
		}
		if !cal.IsTradingDay(t) {
			continue
		}
		out = append(out, b)
	}
	return out
}
