// Package settings persists the pay rates.
package settings

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"shiftlog/internal/calc"
	"shiftlog/internal/format"
	"shiftlog/internal/kv"
)

// Key is the kv key the settings blob lives under.
const Key = "work_settings"

type Settings struct {
	HourlyRate         float64 `json:"hourlyRate"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
	NightPayRate       float64 `json:"nightPayRate"`
}

func Default() Settings {
	return Settings{OvertimeMultiplier: 1}
}

func (s Settings) Rates() calc.Rates {
	return calc.Rates{
		HourlyRate:         s.HourlyRate,
		OvertimeMultiplier: s.OvertimeMultiplier,
		NightPayRate:       s.NightPayRate,
	}
}

type Store struct {
	backend kv.Store
	logger  *log.Logger
	current Settings
}

// Load reads the persisted settings, falling back to defaults when nothing
// usable is stored.
func Load(backend kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		backend: backend,
		logger:  logger.WithPrefix("settings"),
		current: Default(),
	}

	blob, ok, err := backend.Get(Key)
	switch {
	case err != nil:
		s.logger.Warn("could not read settings", "err", err)
	case !ok:
		s.logger.Debug("no stored settings, using defaults")
	default:
		var raw map[string]any
		if err := json.Unmarshal([]byte(blob), &raw); err != nil {
			s.logger.Warn("ignoring stored settings", "err", err)
			break
		}
		s.current = fromRaw(raw)
	}
	return s
}

func fromRaw(raw map[string]any) Settings {
	st := Default()
	st.HourlyRate = format.ToNumber(raw["hourlyRate"])
	st.NightPayRate = format.ToNumber(raw["nightPayRate"])
	if v, ok := raw["overtimeMultiplier"]; ok {
		st.OvertimeMultiplier = multiplier(v)
	}
	return st
}

func (s *Store) Get() Settings {
	return s.current
}

// SetHourlyRate coerces v and persists immediately. Non-numeric input
// becomes 0.
func (s *Store) SetHourlyRate(v string) {
	s.current.HourlyRate = format.ToNumber(v)
	s.persist()
}

// SetOvertimeMultiplier coerces v and persists immediately. Non-numeric
// input falls back to 1.
func (s *Store) SetOvertimeMultiplier(v string) {
	s.current.OvertimeMultiplier = multiplier(v)
	s.persist()
}

func (s *Store) SetNightPayRate(v string) {
	s.current.NightPayRate = format.ToNumber(v)
	s.persist()
}

// multiplier coerces v, falling back to 1 unless v is an explicit zero.
func multiplier(v any) float64 {
	m := format.ToNumber(v)
	if m == 0 && !isZero(v) {
		return 1
	}
	return m
}

func isZero(v any) bool {
	switch z := v.(type) {
	case float64:
		return z == 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(z), 64)
		return err == nil && f == 0
	}
	return false
}

func (s *Store) persist() {
	data, err := json.Marshal(s.current)
	if err != nil {
		s.logger.Warn("encode settings", "err", err)
		return
	}
	if err := s.backend.Set(Key, string(data)); err != nil {
		s.logger.Warn("could not persist settings", "err", err)
	}
}
