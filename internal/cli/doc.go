// Package cli defines the cfl-events command tree: run, sources,
// config, and version.
package cli
