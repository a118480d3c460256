// Package config loads game settings from defaults, an optional TOML file and
// LUCID_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully resolved set of game settings.
type Config struct {
	Display     DisplayConfig   `mapstructure:"display"`
	Controls    ControlsConfig  `mapstructure:"controls"`
	Audio       AudioConfig     `mapstructure:"audio"`
	Stats       StatsConfig     `mapstructure:"stats"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
	Level       string          `mapstructure:"level"`
	TexturesDir string          `mapstructure:"texturesDir"`
	LogLevel    string          `mapstructure:"logLevel"`
}

// DisplayConfig sizes the rendered view.
type DisplayConfig struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Title  string  `mapstructure:"title"`
	FOV    float64 `mapstructure:"fov"`
	// Scale is the window size multiplier over the render resolution.
	Scale      int  `mapstructure:"scale"`
	Fullscreen bool `mapstructure:"fullscreen"`
	VSync      bool `mapstructure:"vsync"`
}

// ControlsConfig tunes player movement.
type ControlsConfig struct {
	MoveSpeed        float64 `mapstructure:"moveSpeed"`
	TurnSpeed        float64 `mapstructure:"turnSpeed"`
	MouseSensitivity float64 `mapstructure:"mouseSensitivity"`
	FootstepInterval float64 `mapstructure:"footstepInterval"`
	InvertMouse      bool    `mapstructure:"invertMouse"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Volume is a base-2 gain; 0 plays at full level, -1 at half.
	Volume     float64 `mapstructure:"volume"`
	SampleRate int     `mapstructure:"sampleRate"`
	// SoundsDir holds <effect>.wav overrides for the synthesized effects.
	SoundsDir string `mapstructure:"soundsDir"`
	// Music is a WAV file looped for the whole session. Empty plays none.
	Music       string  `mapstructure:"music"`
	MusicVolume float64 `mapstructure:"musicVolume"`
}

// StatsConfig controls the run history database.
type StatsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TelemetryConfig controls metric collection.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EnvPrefix is prepended to environment overrides, e.g. LUCID_DISPLAY_WIDTH.
const EnvPrefix = "LUCID"

func setDefaults(v *viper.Viper) {
	v.SetDefault("display.width", 800)
	v.SetDefault("display.height", 600)
	v.SetDefault("display.title", "Lucid")
	v.SetDefault("display.fov", 0.66)
	v.SetDefault("display.scale", 1)
	v.SetDefault("display.fullscreen", false)
	v.SetDefault("display.vsync", true)

	v.SetDefault("controls.moveSpeed", 2.5)
	v.SetDefault("controls.turnSpeed", 2.0)
	v.SetDefault("controls.mouseSensitivity", 0.002)
	v.SetDefault("controls.footstepInterval", 0.5)
	v.SetDefault("controls.invertMouse", false)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.0)
	v.SetDefault("audio.sampleRate", 44100)
	v.SetDefault("audio.soundsDir", "assets/sounds")
	v.SetDefault("audio.music", "assets/music/theme.wav")
	v.SetDefault("audio.musicVolume", -1.0)

	v.SetDefault("stats.enabled", true)
	v.SetDefault("stats.path", "lucid_runs.db")

	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("level", "data/maps/test.toml")
	v.SetDefault("texturesDir", "assets/textures")
	v.SetDefault("logLevel", "info")
}

// Load resolves settings. An empty path skips the file; a named file that
// does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return cfg
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height))
	}
	if c.Display.FOV <= 0 {
		errs = append(errs, fmt.Errorf("display.fov must be positive, got %v", c.Display.FOV))
	}
	if c.Display.Scale <= 0 {
		errs = append(errs, fmt.Errorf("display.scale must be positive, got %d", c.Display.Scale))
	}
	if c.Controls.MoveSpeed < 0 || c.Controls.TurnSpeed < 0 {
		errs = append(errs, errors.New("control speeds must not be negative"))
	}
	return errors.Join(errs...)
}
