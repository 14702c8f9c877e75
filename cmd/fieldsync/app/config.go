package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/guangfu250923/fieldsync/pkg/remote"
)

// Config holds the application configuration loaded from config file,
// environment variables, and .env files.
type Config struct {
	// BaseURL is the remote datastore host.
	BaseURL string

	// InputFile is the placemark export the run reads. Output filenames are
	// fixed per resource by the schema; only their directory is settable.
	InputFile string
	OutputDir string

	// HTTPTimeout bounds every outbound request (fetch and lookup alike).
	HTTPTimeout time.Duration

	// GoogleMapsAPIKey enables the address lookup; empty disables it.
	GoogleMapsAPIKey string

	// Logging configuration.
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration in order of precedence: environment
// variables, .env files, config file (.fieldsync.yaml), then defaults.
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The geocoding key keeps its conventional name.
	_ = viper.BindEnv("google_maps_api_key", "GOOGLE_MAPS_API_KEY")

	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName(".fieldsync")
	_ = viper.ReadInConfig()

	config := &Config{
		BaseURL:          viper.GetString("base_url"),
		InputFile:        viper.GetString("input_file"),
		OutputDir:        viper.GetString("output_dir"),
		HTTPTimeout:      viper.GetDuration("http_timeout"),
		GoogleMapsAPIKey: viper.GetString("google_maps_api_key"),
		LogLevel:         viper.GetString("log_level"),
		LogFormat:        viper.GetString("log_format"),
	}

	// Defaults
	if config.BaseURL == "" {
		config.BaseURL = remote.DefaultBaseURL
	}
	if config.InputFile == "" {
		config.InputFile = "placemarks.csv"
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = remote.DefaultTimeout
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config, nil
}

// loadEnvFiles loads environment variables from .env files; .env.local
// overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
