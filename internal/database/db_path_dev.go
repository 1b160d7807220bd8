//go:build !prod

package database

// GetDataDir returns the directory holding local app data in development:
// the working directory, so the database sits next to the sources.
func GetDataDir() string {
	return "."
}

// GetDefaultDBPath returns the database path for development mode.
func GetDefaultDBPath() string {
	return "macontroller.db"
}

func IsDevelopment() bool {
	return true
}
