package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	Port         int           `mapstructure:"port"`
	MaxUsers     int           `mapstructure:"max_users"`
	LogLevel     string        `mapstructure:"log_level"`
	SendBuffer   int           `mapstructure:"send_buffer"`
	WriteWait    time.Duration `mapstructure:"write_wait"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	Backpressure string        `mapstructure:"backpressure"`
}

var ErrInvalidMaxUsers = errors.New("max_users must be at least 1")

// Load reads config/config.$CONFIG_ENV.yaml if present, then applies
// environment overrides (PORT, MAX_USERS, LOG_LEVEL, MODE).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	setDefaults(v)
	for key, name := range map[string]string{
		"port":      "PORT",
		"max_users": "MAX_USERS",
		"log_level": "LOG_LEVEL",
		"mode":      "MODE",
	} {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Info().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Int("max_users", cfg.MaxUsers).Msg("config ready")
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 4000)
	v.SetDefault("max_users", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("send_buffer", 256)
	v.SetDefault("write_wait", "10s")
	v.SetDefault("ping_period", "54s")
	v.SetDefault("read_limit", 0)
	v.SetDefault("backpressure", "drop")
}

func (c *Config) Validate() error {
	if c.MaxUsers < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidMaxUsers, c.MaxUsers)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SendBuffer < 1 {
		c.SendBuffer = 1
	}
	return nil
}
