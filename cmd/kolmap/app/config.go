package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/internal/config"
	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/errors"
)

// Table source kinds.
const (
	SourceXLSX   = "xlsx"
	SourceSheets = "sheets"
	SourceYAML   = "yaml"
	SourceSample = "sample"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Table source
	Source        string
	Workbook      string
	SpreadsheetID string
	Dataset       string
	MasterTab     string
	ContractTab   string
	ActivityTab   string
	FetchTimeout  time.Duration
	CacheTTL      time.Duration

	// Google credentials and Drive folders
	CredentialsFile string
	CredentialsJSON string
	PDFFolderID     string
	PhotoFolderID   string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (KOLMAP_*)
// 3. .env files
// 4. Config file (~/.kolmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	for _, key := range config.Keys() {
		if err := viper.BindEnv(key); err != nil {
			return nil, errors.NewConfigError("env", "cannot bind "+config.EnvName(key), err)
		}
	}

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kolmap")
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose:    viper.GetBool("verbose"),
		Quiet:      viper.GetBool("quiet"),
		NoColor:    viper.GetBool("no-color"),
		Format:     viper.GetString("format"),
		ConfigFile: viper.ConfigFileUsed(),

		Source:        strings.ToLower(config.GetString(config.KeySource)),
		Workbook:      config.GetString(config.KeyWorkbook),
		SpreadsheetID: config.GetString(config.KeySpreadsheetID),
		Dataset:       config.GetString(config.KeyDataset),
		MasterTab:     config.GetStringDefault(config.KeyMasterTab, constants.DefaultMasterTab),
		ContractTab:   config.GetStringDefault(config.KeyContractTab, constants.DefaultContractTab),
		ActivityTab:   config.GetStringDefault(config.KeyActivityTab, constants.DefaultActivityTab),
		FetchTimeout:  config.GetDuration(config.KeyFetchTimeout, constants.DefaultFetchTimeout),
		CacheTTL:      config.GetDuration(config.KeyCacheTTL, 0),

		CredentialsFile: config.GetString(config.KeyCredentialsFile),
		CredentialsJSON: config.GetString(config.KeyCredentialsJSON),
		PDFFolderID:     config.GetString(config.KeyPDFFolderID),
		PhotoFolderID:   config.GetString(config.KeyPhotoFolderID),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return cfg, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ResolveSource returns the configured source kind. Without an explicit
// kind it is inferred: a workbook wins over a spreadsheet, which wins over
// a dataset file; with none of them the built-in sample is used.
func (c *Config) ResolveSource() string {
	switch {
	case c.Source != "":
		return c.Source
	case c.Workbook != "":
		return SourceXLSX
	case c.SpreadsheetID != "":
		return SourceSheets
	case c.Dataset != "":
		return SourceYAML
	default:
		return SourceSample
	}
}

// NeedsGoogle reports whether any configured source talks to Google APIs.
func (c *Config) NeedsGoogle() bool {
	return c.ResolveSource() == SourceSheets || c.LinksEnabled()
}

// LinksEnabled reports whether a Drive folder is configured.
func (c *Config) LinksEnabled() bool {
	return strings.TrimSpace(c.PDFFolderID) != "" || strings.TrimSpace(c.PhotoFolderID) != ""
}

// Auth returns the credential settings.
func (c *Config) Auth() auth.Config {
	return auth.Config{
		CredentialsFile: c.CredentialsFile,
		CredentialsJSON: c.CredentialsJSON,
	}
}

// loadEnvFiles loads environment variables from .env files. Variables that
// are already set are kept, so .env.local is read first to win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
