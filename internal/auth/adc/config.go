package adc

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadConfig reads section.key from the active gcloud configuration.
// Returns empty string if the configuration or the key is missing.
func ReadConfig(section, key string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	dir := filepath.Join(home, ".config", "gcloud")
	name := "default"
	if data, err := os.ReadFile(filepath.Join(dir, "active_config")); err == nil { // #nosec G304 -- well-known gcloud file
		if n := strings.TrimSpace(string(data)); n != "" {
			name = n
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "configurations", "config_"+name)) // #nosec G304 -- well-known gcloud file
	if err != nil {
		return ""
	}
	return iniValue(string(data), section, key)
}

// iniValue returns the value of key inside [section].
func iniValue(content, section, key string) string {
	var current string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.Trim(line, "[]")
			continue
		}
		if current != section {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
