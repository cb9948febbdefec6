package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load parses environment variables into v according to its `env` tags.
// On the first call the .env file in the working directory, if any, is loaded
// without overriding variables that are already set.
//
//	type Config struct {
//		Issuer string        `env:"MFA_ISSUER" envDefault:"authkit"`
//		TTL    time.Duration `env:"JWT_TTL" envDefault:"15m"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadFiles loads the given dotenv files into the process environment and then
// behaves like Load. Files are optional; a missing one is skipped.
func LoadFiles[T any](v *T, files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", f, err))
		}
	}
	return Load(v)
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
