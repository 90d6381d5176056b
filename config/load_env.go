package config

import (
	"fmt"

	"github.com/subosito/gotenv"
)

const ENV_DIR = "config/envs"

// LoadEnv loads config/envs/.env.<env> into the process environment. Values
// already present in the OS environment win. A missing file is reported but
// is not fatal; the OS environment alone is then used.
func LoadEnv(env string) error {
	envFile := ENV_DIR + "/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		return fmt.Errorf("no .env file found at %s: %w", envFile, err)
	}
	return nil
}
