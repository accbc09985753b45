package assumption

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadConfig reads an assumption bundle from a YAML file and merges it over
// the defaults. Regions present in the file replace the built-in entry for
// that key; regions absent from the file keep their defaults. A zero-valued
// macro field in the file keeps the default reading.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read assumption config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse assumption config: %w", err)
	}

	for region, a := range file.Regions {
		cfg.Regions[region] = a
	}
	cfg.Macro = mergeMacro(cfg.Macro, file.Macro)
	if len(file.Presets) > 0 {
		cfg.Presets = file.Presets
	}
	return cfg, nil
}

func mergeMacro(base, over MacroContext) MacroContext {
	pick := func(b, o float64) float64 {
		if o != 0 {
			return o
		}
		return b
	}
	return MacroContext{
		GDPGrowth: pick(base.GDPGrowth, over.GDPGrowth),
		Inflation: pick(base.Inflation, over.Inflation),
		BIRate:    pick(base.BIRate, over.BIRate),
		OilPrice:  pick(base.OilPrice, over.OilPrice),
		PMI:       pick(base.PMI, over.PMI),
		USDIDR:    pick(base.USDIDR, over.USDIDR),
	}
}

// PresetByName returns the preset with the given name, or the balanced
// default when no preset matches.
func (c Config) PresetByName(name string) ScorePreset {
	for _, p := range c.Presets {
		if p.Name == name {
			return p
		}
	}
	return DefaultPreset()
}
