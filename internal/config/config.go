// Package config reads the environment-only configuration surface. There
// are no credential flags: the generation credential and the optional
// persistence pair arrive through the environment so they never land in
// shell history.
package config

import "github.com/spf13/viper"

// Config holds everything the application reads from the environment.
type Config struct {
	// APIKey is the generation-service credential. Its absence is not an
	// error here; the UI surfaces it once at startup as a blocking dialog.
	APIKey string `mapstructure:"api_key"`

	// Model and Endpoint override the generation backend. An endpoint
	// without a credential selects a local Ollama host.
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`

	// StoreURL and StoreKey enable best-effort persistence; either one
	// missing silently disables it.
	StoreURL string `mapstructure:"store_url"`
	StoreKey string `mapstructure:"store_key"`

	// ExportDir is where the markdown download lands; empty means the
	// working directory.
	ExportDir string `mapstructure:"export_dir"`
}

// Load reads HILITE_* environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HILITE")
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env values through Unmarshal;
	// each key needs a binding.
	for _, key := range []string{"api_key", "model", "endpoint", "store_url", "store_key", "export_dir"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GenerationConfigured reports whether any generation backend can be built.
func (c Config) GenerationConfigured() bool {
	return c.APIKey != "" || c.Endpoint != ""
}

// PersistenceConfigured reports whether the optional store is usable.
func (c Config) PersistenceConfigured() bool {
	return c.StoreURL != "" && c.StoreKey != ""
}
