// internal/config/settings.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the runtime knobs read from the environment.
type Settings struct {
	DefsPath     string `env:"MC_DEFS_PATH" envDefault:"assets/defs/units.json"`
	ScenarioPath string `env:"MC_SCENARIO" envDefault:"assets/scenario.json"`
	Seed         int64  `env:"MC_SEED" envDefault:"0"`
	DebugAddr    string `env:"MC_DEBUG_ADDR" envDefault:"localhost:6060"`
	SoundEnabled bool   `env:"MC_SOUND" envDefault:"true"`
	SoundDir     string `env:"MC_SOUND_DIR" envDefault:"assets/sounds"`
	StartPaused  bool   `env:"MC_START_PAUSED" envDefault:"false"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
