package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var ErrInvalidTimeZone = errors.New("invalid time zone")

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production": {},
	"changeme":                {},
	"secret":                  {},
}

// Config is the process configuration read from the environment.
type Config struct {
	SecretKey       string   `env:"SECRET_KEY"`
	DBPath          string   `env:"DB_PATH" envDefault:"data/nutrilume.db"`
	Port            string   `env:"PORT" envDefault:"8080"`
	TimeZone        string   `env:"TZ" envDefault:"UTC"`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"pt"`
	CookieSecure    bool     `env:"COOKIE_SECURE" envDefault:"false"`
	MealSlots       []string `env:"MEAL_SLOTS" envDefault:"Café da Manhã,Almoço,Lanche,Jantar" envSeparator:","`
	AppEnv          string   `env:"APP_ENV" envDefault:"development"`
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load(dotenvPaths ...string) (Config, error) {
	if err := loadDotenv(dotenvPaths...); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.MealSlots = normalizeMealSlots(cfg.MealSlots)
	if len(cfg.MealSlots) == 0 {
		return Config{}, errors.New("MEAL_SLOTS must name at least one slot")
	}
	if duplicate, ok := firstDuplicate(cfg.MealSlots); ok {
		return Config{}, fmt.Errorf("MEAL_SLOTS lists %q more than once", duplicate)
	}

	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ResolveSecretKey rejects empty keys, well known placeholders and keys
// shorter than 32 bytes.
func (cfg Config) ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

// Location resolves TZ. An unknown zone yields UTC together with an error
// wrapping ErrInvalidTimeZone so the caller can report the fallback.
func (cfg Config) Location() (*time.Location, error) {
	return LoadLocation(cfg.TimeZone)
}

func LoadLocation(name string) (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return time.UTC, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZone, name, err)
	}
	return location, nil
}

func loadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func normalizeMealSlots(raw []string) []string {
	slots := make([]string, 0, len(raw))
	for _, slot := range raw {
		trimmed := strings.TrimSpace(slot)
		if trimmed != "" {
			slots = append(slots, trimmed)
		}
	}
	return slots
}

func firstDuplicate(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, exists := seen[value]; exists {
			return value, true
		}
		seen[value] = struct{}{}
	}
	return "", false
}
