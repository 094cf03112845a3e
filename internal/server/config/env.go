package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays environment variables that are actually set; unset
// variables leave the current value alone. An unparsable value panics.
func parseEnv(config *Config) {
	if err := cleanenv.UpdateEnv(config); err != nil {
		panic(err)
	}
}
