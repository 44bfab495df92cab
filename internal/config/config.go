// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Section SectionConfig `yaml:"section" mapstructure:"section"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the catalog database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// SectionConfig seeds the default cross-section parameters. Every value can
// be overridden per invocation; nothing here acts as hidden process state.
type SectionConfig struct {
	StrikeDeg         float64 `yaml:"strike" mapstructure:"strike"`
	MapLengthKM       float64 `yaml:"map_length_km" mapstructure:"map_length_km"`
	SectionDistanceKM float64 `yaml:"section_distance_km" mapstructure:"section_distance_km"`
	EventDistanceKM   float64 `yaml:"event_distance_km" mapstructure:"event_distance_km"`
	NumLeft           int     `yaml:"num_left" mapstructure:"num_left"`
	NumRight          int     `yaml:"num_right" mapstructure:"num_right"`
	DepthMinKM        float64 `yaml:"depth_min_km" mapstructure:"depth_min_km"`
	DepthMaxKM        float64 `yaml:"depth_max_km" mapstructure:"depth_max_km"`
	Zone              int     `yaml:"zone" mapstructure:"zone"` // 0 derives from the center
	Unit              string  `yaml:"unit" mapstructure:"unit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SEISSECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "seissect.db")
	v.SetDefault("section.map_length_km", 20.0)
	v.SetDefault("section.section_distance_km", 1.0)
	v.SetDefault("section.event_distance_km", 3.0)
	v.SetDefault("section.depth_min_km", 0.0)
	v.SetDefault("section.depth_max_km", 50.0)
	v.SetDefault("section.unit", "km")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks configuration consistency. It collects every problem so
// a misconfigured file reports all failures at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Driver {
	case "", "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("store.driver %q is not supported (sqlite, postgres)", c.Store.Driver))
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required for the postgres driver")
	}

	switch c.Section.Unit {
	case "", "m", "km":
	default:
		problems = append(problems, fmt.Sprintf("section.unit %q is not supported (m, km)", c.Section.Unit))
	}
	if c.Section.Zone < 0 || c.Section.Zone > 60 {
		problems = append(problems, "section.zone must be between 0 and 60")
	}
	if c.Section.NumLeft < 0 || c.Section.NumRight < 0 {
		problems = append(problems, "section.num_left and section.num_right must be >= 0")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be between 1 and 65535")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
