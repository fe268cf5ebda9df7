package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env                string `mapstructure:"ENV"`
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	SigningKey         string `mapstructure:"SIGNING_KEY"`
	AccessTokenHours   int    `mapstructure:"ACCESS_TOKEN_HOURS"`
	RefreshTokenHours  int    `mapstructure:"REFRESH_TOKEN_HOURS"`
	DBUsername         string `mapstructure:"DB_USERNAME"`
	DBPassword         string `mapstructure:"DB_PASSWORD"`
	DBHost             string `mapstructure:"DB_HOST"`
	DBPort             string `mapstructure:"DB_PORT"`
	DBDriver           string `mapstructure:"DB_DRIVER"`
	DBName             string `mapstructure:"DB_NAME"`
	SSLMode            string `mapstructure:"SSLMODE"`
	RedisHost          string `mapstructure:"REDIS_HOST"`
	RedisPort          string `mapstructure:"REDIS_PORT"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	PlunkBaseUrl       string `mapstructure:"PLUNK_BASE_URL"`
	PlunkApiKey        string `mapstructure:"PLUNK_API_KEY"`
	WelcomeTemplateID  string `mapstructure:"WELCOME_TEMPLATE_ID"`
	TokenSweepMinutes  int    `mapstructure:"TOKEN_SWEEP_MINUTES"`
	MigrationSourceURL string `mapstructure:"MIGRATION_SOURCE_URL"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	if config.DBUsername == "" || config.DBPassword == "" {
		return fmt.Errorf("database credentials must be provided")
	}

	if config.SigningKey == "" {
		return fmt.Errorf("signing key must be provided")
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.AccessTokenHours == 0 {
		config.AccessTokenHours = 24
	}
	if config.RefreshTokenHours == 0 {
		config.RefreshTokenHours = 24 * 30
	}
	if config.TokenSweepMinutes == 0 {
		config.TokenSweepMinutes = 60
	}
	if config.MigrationSourceURL == "" {
		config.MigrationSourceURL = "file://db/migrations"
	}
}

// Masking sensitive information for logging
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.DBPassword = "****"
	redacted.RedisPassword = "****"
	redacted.PlunkApiKey = "****"
	return redacted
}
