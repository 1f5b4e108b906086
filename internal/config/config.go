package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Gemini GeminiConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds file ingestion limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// GeminiConfig holds settings for the remote generation capability.
type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SUBCHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUBCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout_secs", 240)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.max_output_tokens", 32768)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "SUBCHECK_SERVER_PORT",
		"server.read_timeout":      "SUBCHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "SUBCHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":       "SUBCHECK_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb":  "SUBCHECK_UPLOAD_MAX_FILE_SIZE_MB",
		"gemini.api_key":           "SUBCHECK_GEMINI_API_KEY",
		"gemini.model":             "SUBCHECK_GEMINI_MODEL",
		"gemini.timeout_secs":      "SUBCHECK_GEMINI_TIMEOUT_SECS",
		"gemini.temperature":       "SUBCHECK_GEMINI_TEMPERATURE",
		"gemini.max_output_tokens": "SUBCHECK_GEMINI_MAX_OUTPUT_TOKENS",
		"log.level":                "SUBCHECK_LOG_LEVEL",
		"log.format":               "SUBCHECK_LOG_FORMAT",
		"cors.allowed_origins":     "SUBCHECK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// The Gemini key is also commonly set as GEMINI_API_KEY; honor it when
	// the prefixed variable is absent.
	apiKey := v.GetString("gemini.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	// Railway/Heroku/Render set a PORT env var. Use it if SUBCHECK_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SUBCHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Gemini = GeminiConfig{
		APIKey:          apiKey,
		Model:           v.GetString("gemini.model"),
		TimeoutSecs:     v.GetInt("gemini.timeout_secs"),
		Temperature:     v.GetFloat64("gemini.temperature"),
		MaxOutputTokens: v.GetInt("gemini.max_output_tokens"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
