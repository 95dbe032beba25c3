package config

import "github.com/joho/godotenv"

// LoadEnvFile loads .env from the working directory, falling back to the
// parent directory when the binary runs from a subfolder.
func LoadEnvFile() error {
	if err := godotenv.Load(); err != nil {
		return godotenv.Load("../.env")
	}
	return nil
}
