package cliparse

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "JWT_SECRET", "NOTIFY_WEBHOOK_URL", "BASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "test.db", "-jwt-secret", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 3442 {
		t.Errorf("Expected default port 3442, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "test.db" {
		t.Errorf("Expected test.db, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlagsExplicit(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "postgres://localhost/givewise",
		"-t", "postgres",
		"-jwt-secret", "s3cret",
		"-webhook-url", "https://hooks.example.org/notify",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.WebhookURL != "https://hooks.example.org/notify" {
		t.Errorf("Unexpected webhook URL: %s", cfg.WebhookURL)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "env.db")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.org/env")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 9000 || cfg.DatabaseURL != "env.db" || cfg.JWTSecret != "env-secret" {
		t.Errorf("Env fallback not applied: %+v", cfg)
	}
	if cfg.WebhookURL != "https://hooks.example.org/env" {
		t.Errorf("Expected webhook from env, got %s", cfg.WebhookURL)
	}
}

func TestParseFlagsFlagsBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "env.db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-d", "flag.db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.DatabaseURL != "flag.db" {
		t.Errorf("Expected flag to win over env, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlagsValidation(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-jwt-secret", "s3cret"}},
		{"missing jwt secret", []string{"-d", "test.db"}},
		{"bad database type", []string{"-d", "test.db", "-t", "mysql", "-jwt-secret", "s3cret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseFlagsBadPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("JWT_SECRET", "s3cret")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected an error for invalid PORT")
	}
}
