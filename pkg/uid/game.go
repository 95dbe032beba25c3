package uid

import (
	"github.com/google/uuid"
)

// GenerateGameID returns a random id for a live game session
func GenerateGameID() string {
	return "g_" + uuid.NewString()
}

// GenerateRunID returns a random id for a benchmark run
func GenerateRunID() string {
	return "run_" + uuid.NewString()
}

// IsRunID reports whether s has the shape GenerateRunID produces.
func IsRunID(s string) bool {
	if len(s) < 4 || s[:4] != "run_" {
		return false
	}
	_, err := uuid.Parse(s[4:])
	return err == nil
}
