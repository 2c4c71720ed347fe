package configs

import (
	"os"

	"github.com/chessmate-app/chessmate/internal/infrastructure/env"
)

// DetermineConfigPath picks the config file: CHESSMATE_CONFIG wins, then a
// config.yaml in the working directory, then no file at all (defaults + env).
func DetermineConfigPath() string {
	if path := env.GetString("CHESSMATE_CONFIG", ""); path != "" {
		return path
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}
