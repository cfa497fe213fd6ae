package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	if AppConfig.Port == "" {
		t.Error("expected a default port")
	}
	if AppConfig.Env == "" {
		t.Error("expected a default environment")
	}
	if AppConfig.TokenTTL() <= 0 {
		t.Errorf("TokenTTL() = %v, want positive", AppConfig.TokenTTL())
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_TTL_HOURS", "12")

	LoadConfig()

	if AppConfig.Port != "9191" {
		t.Errorf("Port = %q, want %q", AppConfig.Port, "9191")
	}
	if AppConfig.Env != "prod" {
		t.Errorf("Env = %q, want %q", AppConfig.Env, "prod")
	}
	if AppConfig.TokenTTL() != 12*time.Hour {
		t.Errorf("TokenTTL() = %v, want 12h", AppConfig.TokenTTL())
	}
}
