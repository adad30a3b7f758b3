package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"
	EnvLocal      = "local"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Env                  string `env:"APP_ENV" validate:"required,oneof=production local"`
	DatabaseURL          string `env:"FIREBASE_DATABASE_URL" validate:"required_if=Env production,omitempty,url"`
	ProjectID            string `env:"FIREBASE_PROJECT_ID" validate:"required"`
	APIKey               string `env:"FIREBASE_API_KEY" validate:"required_if=Env production"`
	DatabaseEmulatorHost string `env:"FIREBASE_DATABASE_EMULATOR_HOST" validate:"required_if=Env local,omitempty,hostname_port"`
	AuthEmulatorHost     string `env:"FIREBASE_AUTH_EMULATOR_HOST" validate:"required_if=Env local,omitempty,hostname_port"`
	Port                 string `env:"PORT" validate:"required,numeric"`
	TeamResultDelayMS    int    `env:"TEAM_RESULT_DELAY_MS" validate:"gte=0"`
	StepperStepMS        int    `env:"STEPPER_STEP_MS" validate:"gt=0"`
	PrizeLocale          string `env:"PRIZE_LOCALE" validate:"required,bcp47_language_tag"`
	LogLevel             string `env:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`

	// invalid holds variables that could not be parsed at all.
	invalid []error
}

func Default() Config {
	return Config{
		Env:                  EnvProduction,
		DatabaseEmulatorHost: "127.0.0.1:9000",
		AuthEmulatorHost:     "127.0.0.1:9099",
		Port:                 "8080",
		TeamResultDelayMS:    4000,
		StepperStepMS:        900,
		PrizeLocale:          "en-IN",
		LogLevel:             "info",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("APP_ENV"); raw != "" {
		cfg.Env = raw
	}
	if raw := os.Getenv("FIREBASE_DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("FIREBASE_PROJECT_ID"); raw != "" {
		cfg.ProjectID = raw
	}
	if raw := os.Getenv("FIREBASE_API_KEY"); raw != "" {
		cfg.APIKey = raw
	}
	if raw := os.Getenv("FIREBASE_DATABASE_EMULATOR_HOST"); raw != "" {
		cfg.DatabaseEmulatorHost = raw
	}
	if raw := os.Getenv("FIREBASE_AUTH_EMULATOR_HOST"); raw != "" {
		cfg.AuthEmulatorHost = raw
	}
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	cfg.TeamResultDelayMS = cfg.intVar("TEAM_RESULT_DELAY_MS", cfg.TeamResultDelayMS)
	cfg.StepperStepMS = cfg.intVar("STEPPER_STEP_MS", cfg.StepperStepMS)
	if raw := os.Getenv("PRIZE_LOCALE"); raw != "" {
		cfg.PrizeLocale = raw
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	return cfg
}

// intVar reads an integer variable. Out of range values are kept so
// Validate can reject them; unparsable ones are recorded.
func (c *Config) intVar(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.invalid = append(c.invalid, fmt.Errorf("%s must be an integer, got %q", name, raw))
		return fallback
	}
	return value
}

func (c Config) Local() bool {
	return c.Env == EnvLocal
}

func (c Config) TeamResultDelay() time.Duration {
	return time.Duration(c.TeamResultDelayMS) * time.Millisecond
}

func (c Config) StepperStep() time.Duration {
	return time.Duration(c.StepperStepMS) * time.Millisecond
}

func (c Config) Addr() string {
	return ":" + c.Port
}
