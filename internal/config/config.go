package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureDefaultSecret signs sessions when neither config nor SECRET_KEY
// provide a secret. Production deployments must override it.
const InsecureDefaultSecret = "dev-secret-key-change-this"

// Config holds all configuration for the application.
type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Server  ServerConfig  `mapstructure:"server"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Cookie string        `mapstructure:"cookie"`
	TTL    time.Duration `mapstructure:"ttl"`
	Secure bool          `mapstructure:"secure"`
}

type ServerConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configs/config.yml (if present) on top of built-in defaults.
// Variables from a .env file are exported first, and environment variables
// override file values: PORT for port, DB_DSN for db.dsn, SECRET_KEY for
// session.secret.
func Load(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("session.secret", "SECRET_KEY", "SESSION_SECRET"); err != nil {
		return nil, fmt.Errorf("bind SECRET_KEY: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "avatar_platform.db")
	v.SetDefault("session.secret", InsecureDefaultSecret)
	v.SetDefault("session.cookie", "session")
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("cors.allowed_origins", []string{})
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("session.secret must not be empty")
	}
	if c.Session.Cookie == "" {
		return errors.New("session.cookie must not be empty")
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn must not be empty")
	}
	return nil
}

// InsecureSecret reports whether sessions are signed with the built-in fallback.
func (c *Config) InsecureSecret() bool {
	return c.Session.Secret == InsecureDefaultSecret
}

// splitOrigins accepts both YAML lists and a comma-separated env value.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
