package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds defaults for the command line tools taken from the environment.
// Flags given explicitly on the command line take precedence.
type Settings struct {
	Format         string `env:"CLAIMTREND_FORMAT" envDefault:"table"`
	ScenariosFile  string `env:"CLAIMTREND_SCENARIOS"`
	AgingTableFile string `env:"CLAIMTREND_AGING_TABLE"`
	Debug          bool   `env:"CLAIMTREND_DEBUG" envDefault:"false"`
}

// LoadSettings loads any of the given dotenv files that exist and then parses
// the environment. Variables already set in the process win over dotenv values.
func LoadSettings(dotenvPaths ...string) (Settings, error) {
	for _, path := range dotenvPaths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Settings{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return Settings{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
