//go:build !cgo || purego
// +build !cgo purego

package storage

// This file is compiled without CGO or with the purego tag. It uses a
// pure Go SQLite implementation: no C compiler required, cross-compiles
// everywhere, somewhat slower.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
