// Package config holds the yaml run configuration for the wind model
// and a set of named parameter presets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultM            = 2e8
	DefaultMdot         = 0.5
	DefaultEta          = 0.06
	DefaultRIn          = 200.0
	DefaultROut         = 1600.0
	DefaultRMin         = 6.0
	DefaultRMax         = 1400.0
	DefaultT            = 2e6
	DefaultMu           = 1.0
	DefaultRhoShielding = 2e8
	DefaultNR           = 20
	DefaultNiter        = 5000
	DefaultVZ0          = 1e7
	DefaultDt           = 4.096 / 10
)

// Config maps one-to-one onto the wind model constructor options plus
// the per-run integration options. Units follow the model: M in solar
// masses, radii in Rg, temperatures in K, densities in cm^-3,
// velocities in cm/s.
type Config struct {
	M             float64  `yaml:"m"`
	Mdot          float64  `yaml:"mdot"`
	Spin          float64  `yaml:"spin"`
	Eta           float64  `yaml:"eta"`
	RIn           float64  `yaml:"r_in"`
	ROut          float64  `yaml:"r_out"`
	RMin          float64  `yaml:"r_min"`
	RMax          float64  `yaml:"r_max"`
	T             float64  `yaml:"t"`
	Mu            float64  `yaml:"mu"`
	Modes         []string `yaml:"modes"`
	RhoShielding  float64  `yaml:"rho_shielding"`
	IntSteps      int      `yaml:"intsteps"`
	NR            int      `yaml:"nr"`
	SaveDir       string   `yaml:"save_dir"`
	RadiationMode string   `yaml:"radiation_mode"`
	NCPUs         int      `yaml:"n_cpus"`

	Niter int     `yaml:"niter"`
	VZ0   float64 `yaml:"v_z_0"`
	Dt    float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return &Config{
		M:             DefaultM,
		Mdot:          DefaultMdot,
		Eta:           DefaultEta,
		RIn:           DefaultRIn,
		ROut:          DefaultROut,
		RMin:          DefaultRMin,
		RMax:          DefaultRMax,
		T:             DefaultT,
		Mu:            DefaultMu,
		RhoShielding:  DefaultRhoShielding,
		IntSteps:      1,
		NR:            DefaultNR,
		SaveDir:       "results",
		RadiationMode: "qsosed",
		NCPUs:         1,
		Niter:         DefaultNiter,
		VZ0:           DefaultVZ0,
		Dt:            DefaultDt,
	}
}

// Load reads path over the defaults, so absent keys keep their default
// values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
