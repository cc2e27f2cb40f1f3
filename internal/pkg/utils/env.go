package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// lookupEnv returns def when key is unset or blank, and also when parse
// rejects the value. Rejections are printed because the zap logger does not
// exist yet while configuration loads.
func lookupEnv[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("config: cannot parse %s=%q, using default: %v", key, raw, err)
		return def
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

// GetEnvStringSlice reads a comma separated list, dropping blank entries.
func GetEnvStringSlice(key string, defaultValue []string) []string {
	return lookupEnv(key, defaultValue, func(raw string) ([]string, error) {
		values := make([]string, 0)
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		return values, nil
	})
}
