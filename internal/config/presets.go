package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

// Presets are named starting points for common systems. Each is a full
// config; flags still override individual fields.
var Presets = map[string]*Config{
	// The fiducial run of the original model papers.
	"fiducial": preset(func(c *Config) {}),
	// A bright quasar accreting near the Eddington limit.
	"bright": preset(func(c *Config) {
		c.M = 1e9
		c.Mdot = 0.9
		c.NR = 40
	}),
	// A low-Eddington-ratio Seyfert; most lines fall back.
	"faint": preset(func(c *Config) {
		c.M = 1e7
		c.Mdot = 0.05
	}),
	// Legacy boundaries and constant launch velocity, for comparison
	// against historical runs.
	"legacy": preset(func(c *Config) {
		c.Modes = []string{"old"}
		c.RadiationMode = "simple"
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	// Modes must not share a backing array with the preset table.
	out.Modes = append([]string(nil), cfg.Modes...)
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
