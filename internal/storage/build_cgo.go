//go:build cgo && !purego
// +build cgo,!purego

package storage

// This file is compiled for CGO builds. It uses the C SQLite driver,
// which is faster and the recommended choice for production use.
//
// Build command:
//   CGO_ENABLED=1 go build ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
