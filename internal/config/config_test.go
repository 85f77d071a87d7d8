package config

import (
	"testing"
)

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	t.Setenv("NEWSDECK_API_KEY", "test-key")
	t.Setenv("NEWSDECK_API_BASE_URL", "")
	t.Setenv("NEWSDECK_COUNTRY", "")
	t.Setenv("NEWSDECK_DB_PATH", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected API base URL: %s", cfg.APIBaseURL)
	}
	if cfg.Country != "us" {
		t.Fatalf("unexpected country: %s", cfg.Country)
	}
	if cfg.DBPath != "newsdeck.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
}

func TestLoadFromEnv_MissingAPIKey(t *testing.T) {
	t.Setenv("NEWSDECK_API_KEY", "")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestValidate_APIBaseURLTrailingSlash(t *testing.T) {
	cfg := Config{
		APIKey:     "test-key",
		APIBaseURL: "https://newsapi.org/v2/",
		Country:    "us",
		DBPath:     "newsdeck.db",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate_CountryCode(t *testing.T) {
	cfg := Config{
		APIKey:     "test-key",
		APIBaseURL: "https://newsapi.org/v2",
		Country:    "usa",
		DBPath:     "newsdeck.db",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for country code")
	}
}
