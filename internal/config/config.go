// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration, populated from the config
// file, environment variables and bound command line flags.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Host   HostConfig   `mapstructure:"host" yaml:"host"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the console color names for each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// HostConfig holds settings for the headless Blender host process.
type HostConfig struct {
	// Binary is the Blender executable, resolved through PATH if relative.
	Binary string `mapstructure:"binary" yaml:"binary"`
	// SceneFile is an optional .blend file opened before the run. When empty
	// the host starts from its factory scene.
	SceneFile string `mapstructure:"scene_file" yaml:"scene_file"`
	// SceneName is the scene whose objects are cleaned up before import.
	SceneName string `mapstructure:"scene_name" yaml:"scene_name"`
	// CleanupPrefix selects which mesh objects are deleted before import:
	// meshes whose name starts with this prefix.
	CleanupPrefix string `mapstructure:"cleanup_prefix" yaml:"cleanup_prefix"`
	// ExtraArgs are appended verbatim to the Blender invocation.
	ExtraArgs []string `mapstructure:"extra_args" yaml:"extra_args"`
	// RenderTimeout bounds a single import+render run of the host process.
	RenderTimeout time.Duration `mapstructure:"render_timeout" yaml:"render_timeout"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "meshtransform")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	// Host defaults. The cleanup prefix reproduces the stock scene
	// convention where the factory cube is named "Cube".
	v.SetDefault("host.binary", "blender")
	v.SetDefault("host.scene_file", "")
	v.SetDefault("host.scene_name", "Scene")
	v.SetDefault("host.cleanup_prefix", "Cube")
	v.SetDefault("host.extra_args", []string{})
	v.SetDefault("host.render_timeout", 10*time.Minute)
}

// NewDefaultConfig returns a Config populated purely from defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults always unmarshal; this indicates a programming error.
		panic(fmt.Sprintf("config: defaults failed to unmarshal: %v", err))
	}
	return cfg
}

// NewConfigFromViper unmarshals the given viper instance into a Config.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
