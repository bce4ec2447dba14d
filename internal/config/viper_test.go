package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "KOLMAP_SPREADSHEET_ID", EnvName(KeySpreadsheetID))
	assert.Equal(t, "KOLMAP_CACHE_TTL", EnvName("cache-ttl"))
}

func TestGetStringFallsBackToEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("KOLMAP_WORKBOOK", "/data/kol.xlsx")
	assert.Equal(t, "/data/kol.xlsx", GetString(KeyWorkbook))

	viper.Set(KeyWorkbook, "/other.xlsx")
	assert.Equal(t, "/other.xlsx", GetString(KeyWorkbook))

	assert.Equal(t, "kol_master", GetStringDefault(KeyMasterTab, "kol_master"))
}

func TestGetDuration(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 30 * time.Second},
		{"45", 45 * time.Second},
		{"2m", 2 * time.Minute},
		{"-1s", 30 * time.Second},
		{"soon", 30 * time.Second},
	}
	for _, tt := range tests {
		viper.Set(KeyFetchTimeout, tt.value)
		assert.Equal(t, tt.want, GetDuration(KeyFetchTimeout, 30*time.Second), tt.value)
	}
}
