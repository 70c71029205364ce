//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools in use:
// - github.com/matryer/moq (service and middleware mocks)
// - github.com/pressly/goose/v3/cmd/goose (manual migrations; the server
//   applies the embedded set itself when DATABASE_AUTO_MIGRATE is on)
