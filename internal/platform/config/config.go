// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend selects the template and profile store.
type Backend string

// Supported backends.
const (
	BackendFirestore Backend = "firestore"
	BackendRemote    Backend = "remote"
	BackendMemory    Backend = "memory"
)

// Defaults for unset variables.
const (
	DefaultPort           = "8080"
	DefaultFrontendOrigin = "http://localhost:3000"
	DefaultBackend        = BackendMemory
	DefaultDebounce       = 500 * time.Millisecond
	DefaultLogLevel       = "info"
)

// Config holds runtime settings.
type Config struct {
	Port            string
	FrontendOrigin  string
	Backend         Backend
	CardAPIURL      string
	ProjectID       string
	CredentialsFile string
	LogLevel        string
	// UsernameDebounce is the quiet period before a username lookup runs.
	UsernameDebounce time.Duration
}

// Load reads .env files (missing files are ignored; existing environment
// variables win) and then the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Port:            get("PORT", DefaultPort),
		FrontendOrigin:  strings.TrimRight(get("FRONTEND_ORIGIN", DefaultFrontendOrigin), "/"),
		Backend:         Backend(strings.ToLower(get("STORE_BACKEND", string(DefaultBackend)))),
		CardAPIURL:      get("CARD_API_URL", ""),
		ProjectID:       get("FIREBASE_PROJECT_ID", ""),
		CredentialsFile: get("GOOGLE_APPLICATION_CREDENTIALS", ""),
		LogLevel:        strings.ToLower(get("LOG_LEVEL", DefaultLogLevel)),
	}

	cfg.UsernameDebounce = DefaultDebounce
	if raw := get("USERNAME_CHECK_DEBOUNCE", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("USERNAME_CHECK_DEBOUNCE: invalid duration %q", raw)
		}
		cfg.UsernameDebounce = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFirestore:
		if c.ProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
	case BackendRemote:
		if c.CardAPIURL == "" {
			return errors.New("CARD_API_URL is required for the remote backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND: unknown backend %q", c.Backend)
	}
	return nil
}
