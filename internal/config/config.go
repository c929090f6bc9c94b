package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends for completed workouts and templates.
const (
	BackendMongo  = "mongo"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Session  SessionConfig  `mapstructure:"session"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"` // Scheme for an endpoint given without one
}

// StorageConfig selects where completed workouts and templates are kept.
type StorageConfig struct {
	Backend         string        `mapstructure:"backend"` // mongo, s3 or memory
	ExportURLExpiry time.Duration `mapstructure:"export_url_expiry"`
}

// SessionConfig controls live workout sessions.
type SessionConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"` // How often the workout timer fires
}

type CatalogConfig struct {
	SeedFile string        `mapstructure:"seed_file"` // Optional YAML file loaded at startup
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"` // Empty means stdout only
	ToStdout bool   `mapstructure:"to_stdout"`
	JSON     bool   `mapstructure:"json"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, session.tick_interval -> SESSION_TICK_INTERVAL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file: defaults and env vars only
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("1s", "15m") decode straight into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_builder")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket_name", "workouts")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("storage.backend", BackendMongo)
	v.SetDefault("storage.export_url_expiry", "15m")
	v.SetDefault("session.tick_interval", "1s")
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("catalog.cache_ttl", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("log.json", false)
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMongo:
		if c.Database.URI == "" || c.Database.Name == "" {
			return fmt.Errorf("database.uri and database.name are required for the %s backend", BackendMongo)
		}
	case BackendS3:
		if c.S3.BucketName == "" {
			return fmt.Errorf("s3.bucket_name is required for the %s backend", BackendS3)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Session.TickInterval <= 0 {
		return fmt.Errorf("session.tick_interval must be positive")
	}
	return nil
}
