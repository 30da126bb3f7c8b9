// config/overlay.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// OverlayEnv applies NOTARIES_* overrides on top of a loaded config so the
// same file can target another city without edits.
func OverlayEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("NOTARIES_CITY")); v != "" {
		cfg.Site.City = v
	}
	if v := strings.TrimSpace(getenv("NOTARIES_LAT")); v != "" {
		cfg.Site.Lat = v
	}
	if v := strings.TrimSpace(getenv("NOTARIES_LON")); v != "" {
		cfg.Site.Lon = v
	}
	if v := strings.TrimSpace(getenv("NOTARIES_PAGE_NB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NOTARIES_PAGE_NB: %w", err)
		}
		cfg.Site.PageNb = n
	}
	if v := strings.TrimSpace(getenv("NOTARIES_OUTPUT")); v != "" {
		cfg.Output.CSVPath = v
	}
	return nil
}
