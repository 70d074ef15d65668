package configs

import (
	"os"

	"github.com/hilthontt/chatlobby/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the explicit flag value,
// then CHATLOBBY_CONFIG, then well-known locations. It returns "" when no
// file exists; defaults apply in that case.
func DetermineConfigPath(flagValue string) string {
	configPath := flagValue

	if configPath == "" {
		configPath = env.GetString("CHATLOBBY_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"../../config.yaml", // keep for local dev
			"/etc/chatlobby/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
