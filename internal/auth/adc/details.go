package adc

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// State represents the credential state (mirrors auth.State to avoid import cycle).
type State int

const (
	// StateConfigured means credentials are configured.
	StateConfigured State = iota
	// StateMissing means required credentials are missing.
	StateMissing
	// StateInvalid means credentials are found but malformed or invalid.
	StateInvalid
)

// Details describes the credentials the Google sources will use.
type Details struct {
	State         State
	Type          string    // "User Credentials" | "Service Account"
	Account       string    // Email address or client ID
	Project       string    // Project ID
	ProjectSource string    // "quota_project_id" | "project_id" | "gcloud config" | "not set"
	Path          string    // Credentials file
	LastAuth      time.Time // File modification time
	ErrorMessage  string    // Error message (only for invalid/missing states)
}

// BuildDetails inspects the credentials file found from explicit.
// Performs local inspection only - no network calls are made.
func BuildDetails(explicit string) *Details {
	path := FindFile(explicit)
	if path == "" {
		return &Details{
			State:        StateMissing,
			ErrorMessage: "No credentials found. Set credentials_file or " + EnvCredentials,
		}
	}

	file, err := ParseFile(path)
	if err != nil {
		return &Details{
			State:        StateInvalid,
			Path:         path,
			ErrorMessage: fmt.Sprintf("credentials file invalid: %v", err),
		}
	}

	details := &Details{
		State:    StateConfigured,
		Type:     credentialType(file.Type),
		Account:  accountIdentifier(file),
		Path:     path,
		LastAuth: fileModTime(path),
	}
	details.Project, details.ProjectSource = resolveProject(file)
	return details
}

// credentialType converts the file type to a human-readable string.
func credentialType(fileType string) string {
	if fileType == TypeServiceAccount {
		return "Service Account"
	}
	return "User Credentials"
}

// accountIdentifier prefers an email address and falls back to the client ID.
func accountIdentifier(file *File) string {
	switch {
	case file.ClientEmail != "":
		return file.ClientEmail
	case file.Account != "":
		return file.Account
	case file.ClientID != "":
		return "(client ID: " + file.ClientID + ")"
	}
	return ""
}

func fileModTime(path string) time.Time {
	if stat, err := os.Stat(path); err == nil {
		return stat.ModTime()
	}
	return time.Time{}
}

// resolveProject determines the project ID.
//
// Priority order:
//  1. quota_project_id
//  2. project_id
//  3. gcloud config (core.project)
func resolveProject(file *File) (project, source string) {
	if file.QuotaProjectID != "" {
		return file.QuotaProjectID, "quota_project_id"
	}
	if file.ProjectID != "" {
		return file.ProjectID, "project_id"
	}
	if configProject := ReadConfig("core", "project"); configProject != "" {
		return configProject, "gcloud config"
	}
	return "", "not set"
}

// FormatBrief creates a one-line summary of the credentials.
//
// Example: "Service Account, kol-reader@proj.iam.gserviceaccount.com, Project: proj".
func FormatBrief(details *Details) string {
	if details.State != StateConfigured {
		return details.ErrorMessage
	}

	parts := []string{details.Type}
	if details.Account != "" {
		parts = append(parts, details.Account)
	}
	if details.Project != "" {
		parts = append(parts, fmt.Sprintf("Project: %s", details.Project))
	} else {
		parts = append(parts, "No project set")
	}
	return strings.Join(parts, ", ")
}
