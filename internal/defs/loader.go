// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go-mind-control/internal/config"
)

// UnitLibrary holds all unit definitions, keyed by their ID.
var UnitLibrary Library

// LoadUnitDefinitions reads the unit configuration file and populates the UnitLibrary.
func LoadUnitDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read unit definitions file: %w", err)
	}

	lib, err := ParseUnitDefinitions(file)
	if err != nil {
		return err
	}

	UnitLibrary = lib
	log.Printf("Loaded %d unit definitions", len(UnitLibrary))
	return nil
}

// ParseUnitDefinitions decodes a JSON array of unit definitions and fills in defaults.
func ParseUnitDefinitions(data []byte) (Library, error) {
	var unitDefs []UnitDefinition
	if err := json.Unmarshal(data, &unitDefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unit definitions: %w", err)
	}

	lib := make(Library, len(unitDefs))
	for _, def := range unitDefs {
		if def.ID == "" {
			return nil, fmt.Errorf("unit definition %q has no id", def.Name)
		}
		if _, dup := lib[def.ID]; dup {
			return nil, fmt.Errorf("duplicate unit definition %q", def.ID)
		}
		applyDefaults(&def)
		lib[def.ID] = def
	}
	return lib, nil
}

func applyDefaults(def *UnitDefinition) {
	if mc := def.MindControllable; mc != nil && mc.FallbackOwner == "" {
		mc.FallbackOwner = config.DefaultFallbackOwner
	}
	if mc := def.MindController; mc != nil {
		b := &mc.Bolt
		if b.Width <= 0 {
			b.Width = config.DefaultBoltWidth
		}
		if b.SegmentLen <= 0 {
			b.SegmentLen = config.DefaultBoltSegmentLength
		}
		if b.FlickerTicks <= 0 {
			b.FlickerTicks = config.DefaultBoltFlickerTicks
		}
		if b.Color.A == 0 {
			b.Color = config.DefaultBoltColor
		}
	}
	if def.Visuals.RadiusFactor <= 0 {
		def.Visuals.RadiusFactor = config.DefaultUnitRadius
	}
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*ScenarioDefinition, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario ScenarioDefinition
	if err := json.Unmarshal(file, &scenario); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if len(scenario.Players) == 0 {
		return nil, fmt.Errorf("scenario %q has no players", scenario.Name)
	}

	log.Printf("Loaded scenario %q: %d players, %d units", scenario.Name, len(scenario.Players), len(scenario.Units))
	return &scenario, nil
}
