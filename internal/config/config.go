// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config represents the unityforge CLI configuration.
// Loaded from ~/.unityforge/config.yaml; environment variables with the
// UNITYFORGE_ prefix take precedence over file values.
type Config struct {
	// DefaultGenre is the genre used when --genre is not specified.
	// Env: UNITYFORGE_GENRE
	DefaultGenre string `mapstructure:"defaultGenre"`

	// OutDir is the default directory for generated projects.
	// Env: UNITYFORGE_OUT_DIR, Default: "./project"
	OutDir string `mapstructure:"outDir"`

	// CatalogDir points at an external catalog directory. Empty means
	// the catalog embedded in the binary.
	// Env: UNITYFORGE_CATALOG_DIR
	CatalogDir string `mapstructure:"catalogDir"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		OutDir: "./project",
	}
}

// WithDefaults fills unset fields with their default values.
func (c *Config) WithDefaults() *Config {
	if c.OutDir == "" {
		c.OutDir = "./project"
	}
	return c
}
