// Package env holds the one environment helper main needs before the full
// config is loaded.
package env

import "os"

// Get reads key from the environment, falling back when it is unset or
// blank. Blank counts as unset: an empty PORT should not win over the
// configured default.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
