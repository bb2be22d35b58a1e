package infra

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/booth")
	t.Setenv("BFL_API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.BFLBaseURL != "https://api.bfl.ai/v1" {
		t.Fatalf("BFLBaseURL = %s", cfg.BFLBaseURL)
	}
	if cfg.BFLAspectRatio != "4:3" {
		t.Fatalf("BFLAspectRatio = %s", cfg.BFLAspectRatio)
	}
	if cfg.HTTPWriteTimeout != 150*time.Second {
		t.Fatalf("HTTPWriteTimeout = %v", cfg.HTTPWriteTimeout)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	required := []string{"DATABASE_URL", "BFL_API_KEY", "JWT_SECRET", "ADMIN_PASSWORD"}
	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error when %s is missing", missing)
			}
		})
	}
}

func TestGetEnvIntFallback(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvInt("SOME_INT", 7); got != 7 {
		t.Fatalf("getEnvInt = %d, want fallback 7", got)
	}
	t.Setenv("SOME_INT", "42")
	if got := getEnvInt("SOME_INT", 7); got != 42 {
		t.Fatalf("getEnvInt = %d, want 42", got)
	}
}
