package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUnits    = 120
	DefaultDt       = 0.01
	DefaultDuration = 60.0
	DefaultLevel    = 40.0
)

type Config struct {
	Muscle     MuscleConfig     `yaml:"muscle"`
	Excitation ExcitationConfig `yaml:"excitation"`
	Integrator string           `yaml:"integrator"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	Seed       int64            `yaml:"seed"`
}

type MuscleConfig struct {
	Units int `yaml:"units"`

	// Optional overrides of the published model constants; zero means
	// keep the default.
	MaxRecruitmentThreshold float64 `yaml:"max_recruitment_threshold"`
	FatigueFactor           float64 `yaml:"fatigue_factor"`
	FatigabilityRange       float64 `yaml:"fatigability_range"`
}

type ExcitationConfig struct {
	Profile   string  `yaml:"profile"` // constant, step, ramp, sine
	Level     float64 `yaml:"level"`   // constant level, step high, sine mean
	Low       float64 `yaml:"low"`     // step low, ramp start
	At        float64 `yaml:"at"`      // step time, ramp duration
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Muscle:     MuscleConfig{Units: DefaultUnits},
		Excitation: ExcitationConfig{Profile: "constant", Level: DefaultLevel},
		Integrator: "euler",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
	}
}

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
