package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTExpiration time.Duration `mapstructure:"JWT_EXPIRATION"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	Timezone      string        `mapstructure:"TIMEZONE"`
	StrictSchema  bool          `mapstructure:"STRICT_SCHEMA"`
	AutoMigrate   bool          `mapstructure:"AUTO_MIGRATE"`
	IsLocalDev    bool          `mapstructure:"LOCAL_DEV"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("DATABASE_URL", "postgresql://postgres@localhost:5432/worldpav")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("STRICT_SCHEMA", false)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("LOCAL_DEV", false)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the civil timezone all dates are interpreted in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
