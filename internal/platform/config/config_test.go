package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port, got %s", cfg.Port)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.Backend)
	}
	if cfg.UsernameDebounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %s", cfg.UsernameDebounce)
	}
	if cfg.FrontendOrigin != DefaultFrontendOrigin {
		t.Errorf("expected default origin, got %s", cfg.FrontendOrigin)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected default log level, got %s", cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":                    "9090",
		"FRONTEND_ORIGIN":         "https://cards.app//",
		"STORE_BACKEND":           "Remote",
		"CARD_API_URL":            "https://api.cards.app",
		"USERNAME_CHECK_DEBOUNCE": "250ms",
		"LOG_LEVEL":               "DEBUG",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Backend != BackendRemote {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.FrontendOrigin != "https://cards.app" {
		t.Errorf("expected trailing slashes trimmed, got %s", cfg.FrontendOrigin)
	}
	if cfg.UsernameDebounce != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.UsernameDebounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected lower-cased log level, got %s", cfg.LogLevel)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "postgres"}},
		{"firestore without project", map[string]string{"STORE_BACKEND": "firestore"}},
		{"remote without url", map[string]string{"STORE_BACKEND": "remote"}},
		{"bad debounce", map[string]string{"USERNAME_CHECK_DEBOUNCE": "soon"}},
		{"negative debounce", map[string]string{"USERNAME_CHECK_DEBOUNCE": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envMap(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "STORE_BACKEND=firestore\nFIREBASE_PROJECT_ID=demo-cards\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// Register cleanup for variables godotenv sets.
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	_ = os.Unsetenv("STORE_BACKEND")
	_ = os.Unsetenv("FIREBASE_PROJECT_ID")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendFirestore || cfg.ProjectID != "demo-cards" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
