package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Store       StoreConfig       `mapstructure:"store"`
	Transcriber TranscriberConfig `mapstructure:"transcriber"`
	QuranAPI    QuranAPIConfig    `mapstructure:"quran_api"`
	App         AppConfig         `mapstructure:"app"`
	Log         LogConfig         `mapstructure:"log"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type RedisConfig struct {
	URI string `mapstructure:"uri"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// TranscriberConfig selects and configures the speech-to-text backend.
// Provider is one of "elevenlabs", "whisper" or "mock".
type TranscriberConfig struct {
	Provider string `mapstructure:"provider"`
	Language string `mapstructure:"language"`

	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	Whisper    WhisperConfig    `mapstructure:"whisper"`
}

type ElevenLabsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type WhisperConfig struct {
	Command   string `mapstructure:"command"`
	ModelPath string `mapstructure:"model_path"`
}

type QuranAPIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type AppConfig struct {
	LocalesDir      string `mapstructure:"locales_dir"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

// Load loads configuration from a YAML file with environment variable overrides
func Load(filename string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(filename)

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.path", "data/recitations.db")
	v.SetDefault("transcriber.provider", "mock")
	v.SetDefault("transcriber.language", "ar")
	v.SetDefault("transcriber.elevenlabs.base_url", "https://api.elevenlabs.io/v1/speech-to-text")
	v.SetDefault("app.locales_dir", "locales")
	v.SetDefault("app.default_language", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("telemetry.service_name", "quran-recite-api")
	v.SetDefault("telemetry.environment", "development")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Environment variable configuration
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Redis.URI == "" {
		return nil, fmt.Errorf("redis URI is required")
	}
	switch cfg.Transcriber.Provider {
	case "mock":
	case "elevenlabs":
		if cfg.Transcriber.ElevenLabs.APIKey == "" {
			return nil, fmt.Errorf("elevenlabs API key is required")
		}
	case "whisper":
		if cfg.Transcriber.Whisper.Command == "" {
			return nil, fmt.Errorf("whisper command is required")
		}
	default:
		return nil, fmt.Errorf("unknown transcriber provider: %s", cfg.Transcriber.Provider)
	}

	return &cfg, nil
}
