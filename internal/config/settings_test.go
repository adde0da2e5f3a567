package config

import "testing"

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.DefsPath != "assets/defs/units.json" {
		t.Errorf("DefsPath = %q", s.DefsPath)
	}
	if !s.SoundEnabled {
		t.Error("sound should be on by default")
	}
	if s.Seed != 0 {
		t.Errorf("Seed = %d, want 0", s.Seed)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("MC_SEED", "1234")
	t.Setenv("MC_SOUND", "false")
	t.Setenv("MC_SCENARIO", "/tmp/other.json")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", s.Seed)
	}
	if s.SoundEnabled {
		t.Error("MC_SOUND=false should disable sound")
	}
	if s.ScenarioPath != "/tmp/other.json" {
		t.Errorf("ScenarioPath = %q", s.ScenarioPath)
	}
}

func TestLoadSettingsRejectsBadValue(t *testing.T) {
	t.Setenv("MC_SEED", "not-a-number")
	if _, err := LoadSettings(); err == nil {
		t.Error("expected an error for a malformed seed")
	}
}
