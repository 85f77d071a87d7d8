package config

import (
	"errors"
	"fmt"
	"os"
)

const defaultAPIBaseURL = "https://newsapi.org/v2"

// Config holds runtime settings for the app.
type Config struct {
	APIKey      string
	APIBaseURL  string
	Country     string
	DBPath      string
	DevPassword string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIKey:      os.Getenv("NEWSDECK_API_KEY"),
		APIBaseURL:  os.Getenv("NEWSDECK_API_BASE_URL"),
		Country:     os.Getenv("NEWSDECK_COUNTRY"),
		DBPath:      os.Getenv("NEWSDECK_DB_PATH"),
		DevPassword: os.Getenv("NEWSDECK_DEV_PASSWORD"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "newsdeck.db"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("NEWSDECK_API_KEY is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if len(c.Country) != 2 {
		return fmt.Errorf("Country must be a two-letter code: %s", c.Country)
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}
