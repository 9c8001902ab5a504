package shared

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvFiles lists the dotenv files read by [LoadEnv], highest precedence first.
var EnvFiles = []string{".env.local", ".env"}

// LoadEnv loads variables from the dotenv files that exist.
//
// Variables already present in the process environment are never overwritten,
// so earlier files in [EnvFiles] win over later ones.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = EnvFiles
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}
