// Package config names the kolmap configuration keys and reads them from
// viper with an environment fallback.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables of every key.
const EnvPrefix = "KOLMAP"

// Configuration keys.
const (
	KeySource          = "source" // xlsx | sheets | yaml | sample
	KeyWorkbook        = "workbook"
	KeySpreadsheetID   = "spreadsheet_id"
	KeyDataset         = "dataset"
	KeyMasterTab       = "master_tab"
	KeyContractTab     = "contract_tab"
	KeyActivityTab     = "activity_tab"
	KeyCredentialsFile = "credentials_file"
	KeyCredentialsJSON = "credentials_json"
	KeyPDFFolderID     = "pdf_folder_id"
	KeyPhotoFolderID   = "photo_folder_id"
	KeyFetchTimeout    = "fetch_timeout"
	KeyCacheTTL        = "cache_ttl"
)

// Keys lists every key bound to an environment variable.
func Keys() []string {
	return []string{
		KeySource, KeyWorkbook, KeySpreadsheetID, KeyDataset,
		KeyMasterTab, KeyContractTab, KeyActivityTab,
		KeyCredentialsFile, KeyCredentialsJSON,
		KeyPDFFolderID, KeyPhotoFolderID,
		KeyFetchTimeout, KeyCacheTTL,
	}
}

// EnvName returns the environment variable of key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	viperValue := viper.GetString(key)
	if viperValue != "" {
		return viperValue
	}
	return os.Getenv(EnvName(key))
}

// GetStringDefault returns the value of key, or def when unset.
func GetStringDefault(key, def string) string {
	if v := strings.TrimSpace(GetString(key)); v != "" {
		return v
	}
	return def
}

// GetDuration returns the duration of key, or def when unset or invalid.
// Plain numbers are read as seconds.
func GetDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(GetString(key))
	if raw == "" {
		return def
	}
	if n, err := cast.ToInt64E(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := cast.ToDurationE(raw)
	if err != nil || d < 0 {
		return def
	}
	return d
}
