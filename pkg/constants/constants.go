// Package constants provides shared constants used throughout the kolmap codebase.
// This includes timeouts, default tab names and the display
// formats shared by the CLI and the report package.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultFetchTimeout bounds a single raw table or link listing fetch
	DefaultFetchTimeout = 30 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second
)

// FilePermissions is the permission of created log files (rw-r--r--)
const FilePermissions = 0644

// Default tab (worksheet) names of the three raw tables
const (
	DefaultMasterTab   = "kol_master"
	DefaultContractTab = "contract_tasks"
	DefaultActivityTab = "activity_log"
)

// Drive listing limits
const (
	// PDFPageSize is the page size used when listing the PDF folder
	PDFPageSize = 200

	// PhotoPageSize is the page size used when listing the photo folder
	PhotoPageSize = 500
)

// Cache constants
const (
	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Format constants
const (
	// DateFormat is the display format for date values
	DateFormat = "2006-01-02"
)

// Placeholder is shown for absent text values and used as the "no value"
// marker in source sheets.
const Placeholder = "-"
