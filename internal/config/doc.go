// Package config resolves run settings from flags, CFL_EVENTS_*
// environment variables, the config file, and built-in defaults.
package config
