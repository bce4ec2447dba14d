// Package embedded ships a small demonstration dataset inside the binary.
package embedded

import (
	"embed"
)

// FS holds the sample dataset.
//
//go:embed sample/*
var FS embed.FS

// SamplePath is the dataset path inside FS.
const SamplePath = "sample/dataset.yaml"
