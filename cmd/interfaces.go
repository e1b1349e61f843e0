package cmd

import (
	"context"
	"io"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/loader"
)

// API is the surface commands operate on.
// It strips away all functions not required for command operations.
type API interface {
	// Store returns the store for the given namespace name.
	// An empty name selects the raw backend.
	Store(namespace string) depot.Store

	// Loader returns the queue used for resource loads.
	Loader() *loader.Queue
}

// Command represents an executable depot operation.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "get -n cache <key>")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
