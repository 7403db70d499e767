package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// App holds the generator settings read from the environment.
// Command-line flags take precedence over these values.
type App struct {
	Env        string `env:"SEEDKIT_ENV" envDefault:"development"`
	LogLevel   string `env:"SEEDKIT_LOG_LEVEL"`
	LogFormat  string `env:"SEEDKIT_LOG_FORMAT"`
	BcryptCost int    `env:"SEEDKIT_BCRYPT_COST" envDefault:"10"`
	Workers    int    `env:"SEEDKIT_WORKERS" envDefault:"16"`
	Seed       uint64 `env:"SEEDKIT_SEED"`
	PoolDir    string `env:"SEEDKIT_POOL_DIR"`
	OutDir     string `env:"SEEDKIT_OUT_DIR"`
}

// Validate checks values env tags cannot express.
func (a App) Validate() error {
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]", ErrInvalidConfig, a.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if a.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, a.Workers)
	}
	return nil
}

// LoadApp loads and validates App.
func LoadApp() (App, error) {
	var cfg App
	if err := Load(&cfg); err != nil {
		return App{}, err
	}
	if err := cfg.Validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}
