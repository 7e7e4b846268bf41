// Package env loads .env files so provider URLs and API keys can stay out of
// the YAML config.
package env

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Load reads the given .env files (".env" when none are given) into the
// process environment. Missing files are skipped. Variables already set in
// the environment take precedence over the file.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "failed to load %s", f)
		}
	}
	return nil
}
