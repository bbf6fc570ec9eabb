// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrAPIURLMissing = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid = errors.New("environment variable API_URL must be a valid URL")
)

// Config contains all settings of the backend.
type Config struct {
	APIURL           *url.URL // externally reachable base URL of the API
	Port             string
	LogFormat        string // "human" for console output, JSON otherwise
	GinMode          string
	DatabaseURL      string // SQLite file path or postgres:// URL
	CORSAllowOrigins []string
	EnablePprof      bool
}

// HumanLogs reports whether logs are written for humans instead of as JSON.
//
// Without an explicit LOG_FORMAT, human readable logs are used in gin's debug mode.
func (c Config) HumanLogs() bool {
	if c.LogFormat != "" {
		return c.LogFormat == "human"
	}

	return c.GinMode == "debug"
}

// Load reads the configuration from environment variables.
// A .env file in the working directory is loaded first if it exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DATABASE_URL", "data/cashlog.db")
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("ENABLE_PPROF", false)

	rawURL := v.GetString("API_URL")
	if rawURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	apiURL, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil || apiURL.Scheme == "" || apiURL.Host == "" {
		return Config{}, fmt.Errorf("%w, got '%s'", ErrAPIURLInvalid, rawURL)
	}

	return Config{
		APIURL:           apiURL,
		Port:             v.GetString("PORT"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		GinMode:          v.GetString("GIN_MODE"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		CORSAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:      v.GetBool("ENABLE_PPROF"),
	}, nil
}
