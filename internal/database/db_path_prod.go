//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

const appDirName = "macontroller"

// GetDataDir returns the per-user app data directory, creating it if needed.
// Falls back to the working directory when the config dir is unavailable.
func GetDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "."
	}

	appDir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "."
	}
	return appDir
}

// GetDefaultDBPath returns the database path for production mode, inside the
// user's config directory.
func GetDefaultDBPath() string {
	return filepath.Join(GetDataDir(), "macontroller.db")
}

func IsDevelopment() bool {
	return false
}
