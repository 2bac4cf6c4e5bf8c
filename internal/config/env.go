// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	gameconfig "github.com/tomz197/absorb/internal/loop/config"
)

// VariantEnv selects the game variant for every binary.
const VariantEnv = "ABSORB_VARIANT"

// Load reads environment variables from the given .env files (".env" when
// none are given). Variables already set in the environment win. Missing
// files are not an error.
func Load(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool returns the boolean value of the environment variable named by
// the key, or fallback if it is unset or not a boolean.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

// Variant returns the game variant named by ABSORB_VARIANT. Unset selects
// classic; an unknown name falls back to classic and reports an error.
func Variant() (gameconfig.Variant, error) {
	name := GetEnv(VariantEnv, gameconfig.VariantClassic.Name)
	v, ok := gameconfig.VariantByName(name)
	if !ok {
		return gameconfig.VariantClassic, fmt.Errorf("unknown %s %q", VariantEnv, name)
	}
	return v, nil
}
