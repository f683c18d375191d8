package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	DataGov   DataGovConfig   `yaml:"datagov" mapstructure:"datagov"`
	Weather   WeatherConfig   `yaml:"weather" mapstructure:"weather"`
	TTS       TTSConfig       `yaml:"tts" mapstructure:"tts"`
	Advisory  AdvisoryConfig  `yaml:"advisory" mapstructure:"advisory"`
	History   HistoryConfig   `yaml:"history" mapstructure:"history"`
	Locations LocationsConfig `yaml:"locations" mapstructure:"locations"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DatasetConfig points at the historical market snapshot.
type DatasetConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AnthropicConfig holds Anthropic API settings used for price estimates and advice.
type AnthropicConfig struct {
	Key              string `yaml:"key" mapstructure:"key"`
	Model            string `yaml:"model" mapstructure:"model"`
	MaxTokens        int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	FailureThreshold int    `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int    `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// DataGovConfig holds data.gov.in Open Government Data settings.
type DataGovConfig struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled"`
	MergeFilters bool    `yaml:"merge_filters" mapstructure:"merge_filters"`
	Key          string  `yaml:"key" mapstructure:"key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	ResourceID   string  `yaml:"resource_id" mapstructure:"resource_id"`
	State        string  `yaml:"state" mapstructure:"state"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	MaxAttempts  int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	FilterLimit  int     `yaml:"filter_limit" mapstructure:"filter_limit"`
}

// WeatherConfig holds Open-Meteo settings.
type WeatherConfig struct {
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	ForecastDays int    `yaml:"forecast_days" mapstructure:"forecast_days"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// TTSConfig holds speech synthesis settings.
type TTSConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Lang        string  `yaml:"lang" mapstructure:"lang"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// AdvisoryConfig holds orchestrator defaults.
type AdvisoryConfig struct {
	DefaultMarket string  `yaml:"default_market" mapstructure:"default_market"`
	DefaultCrop   string  `yaml:"default_crop" mapstructure:"default_crop"`
	DefaultLat    float64 `yaml:"default_lat" mapstructure:"default_lat"`
	DefaultLon    float64 `yaml:"default_lon" mapstructure:"default_lon"`
}

// HistoryConfig bounds price history requests.
type HistoryConfig struct {
	MaxDays int `yaml:"max_days" mapstructure:"max_days"`
}

// LocationsConfig optionally overrides the built-in location table.
type LocationsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
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
	v.SetEnvPrefix("MANDI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "data/Dataset.csv")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.timeout_secs", 30)
	v.SetDefault("anthropic.failure_threshold", 5)
	v.SetDefault("anthropic.reset_timeout_secs", 60)
	v.SetDefault("datagov.enabled", false)
	v.SetDefault("datagov.merge_filters", true)
	v.SetDefault("datagov.key", "")
	v.SetDefault("datagov.base_url", "https://api.data.gov.in/resource")
	v.SetDefault("datagov.resource_id", "9ef84268-d588-465a-a308-a864a43d0070")
	v.SetDefault("datagov.state", "Maharashtra")
	v.SetDefault("datagov.timeout_secs", 30)
	v.SetDefault("datagov.rate_limit", 5)
	v.SetDefault("datagov.max_attempts", 2)
	v.SetDefault("datagov.filter_limit", 5000)
	v.SetDefault("weather.base_url", "https://api.open-meteo.com")
	v.SetDefault("weather.forecast_days", 3)
	v.SetDefault("weather.timeout_secs", 15)
	v.SetDefault("tts.base_url", "https://translate.google.com")
	v.SetDefault("tts.lang", "mr")
	v.SetDefault("tts.timeout_secs", 30)
	v.SetDefault("tts.rate_limit", 5)
	v.SetDefault("advisory.default_market", "Pune")
	v.SetDefault("advisory.default_crop", "Tomato")
	v.SetDefault("advisory.default_lat", 19.0760)
	v.SetDefault("advisory.default_lon", 72.8777)
	v.SetDefault("history.max_days", 365)
	v.SetDefault("locations.file", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.timeout_secs", 120)
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
