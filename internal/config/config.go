package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Session SessionConfig
	Maps    MapsConfig
	Journal JournalConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

// APIConfig points at the remote dynamits API that owns all business state.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieTTL    time.Duration
	SecureCookie bool
}

type MapsConfig struct {
	APIKey       string
	MapID        string
	SettingsPath string
}

type JournalConfig struct {
	Path string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("API_BASE_URL", "https://api.dynamits.id")
	viper.SetDefault("API_TIMEOUT", "15s")
	viper.SetDefault("SESSION_COOKIE_TTL", "168h")
	viper.SetDefault("SESSION_COOKIE_SECURE", true)
	viper.SetDefault("MAPS_API_KEY", "")
	viper.SetDefault("MAPS_MAP_ID", "bd607af67d5b8861")
	viper.SetDefault("MAP_SETTINGS_PATH", "internal/config/map.yaml")
	viper.SetDefault("JOURNAL_PATH", "data/claims.db")
	viper.SetDefault("LOG_LEVEL", "info")

	apiTimeout, err := time.ParseDuration(viper.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cookieTTL, err := time.ParseDuration(viper.GetString("SESSION_COOKIE_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: apiTimeout,
		},
		Session: SessionConfig{
			CookieTTL:    cookieTTL,
			SecureCookie: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		Maps: MapsConfig{
			APIKey:       viper.GetString("MAPS_API_KEY"),
			MapID:        viper.GetString("MAPS_MAP_ID"),
			SettingsPath: viper.GetString("MAP_SETTINGS_PATH"),
		},
		Journal: JournalConfig{
			Path: viper.GetString("JOURNAL_PATH"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
