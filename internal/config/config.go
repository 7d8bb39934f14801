package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env" validate:"required"` // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`                       // Telegram API token loaded from environment
	API              API    `mapstructure:"api"`                     // hadith backend section
	Bot              Bot    `mapstructure:"bot"`                     // telegram polling section
}

// API contains settings of the hadith REST backend.
type API struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"` // base URL including the /api prefix
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`          // per-request timeout
}

// Bot contains Telegram polling parameters.
type Bot struct {
	Debug                bool `mapstructure:"debug"`                                   // enables tgbotapi debug output
	UpdateTimeout        int  `mapstructure:"update_timeout" validate:"min=1"`         // long polling timeout in seconds
	MaxConcurrentUpdates int  `mapstructure:"max_concurrent_updates" validate:"min=1"` // updates handled in parallel
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine: the environment may already be populated.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("bot.debug", false)
	v.SetDefault("bot.update_timeout", 60)
	v.SetDefault("bot.max_concurrent_updates", 16)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("api.base_url", "API_BASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
