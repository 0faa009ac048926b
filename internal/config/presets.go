package config

var Presets = map[string]*Config{
	"brief": {
		Muscle:     MuscleConfig{Units: 120},
		Excitation: ExcitationConfig{Profile: "constant", Level: 40},
		Integrator: "euler", Dt: 0.01, Duration: 10.0,
	},
	"endurance": {
		Muscle:     MuscleConfig{Units: 120},
		Excitation: ExcitationConfig{Profile: "constant", Level: 67},
		Integrator: "rk4", Dt: 0.05, Duration: 200.0,
	},
	"ramp": {
		Muscle:     MuscleConfig{Units: 120},
		Excitation: ExcitationConfig{Profile: "ramp", Low: 0, Level: 67, At: 30},
		Integrator: "euler", Dt: 0.01, Duration: 60.0,
	},
	"tremor": {
		Muscle:     MuscleConfig{Units: 120},
		Excitation: ExcitationConfig{Profile: "sine", Level: 30, Amplitude: 10, Frequency: 2},
		Integrator: "rk4", Dt: 0.005, Duration: 30.0,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
