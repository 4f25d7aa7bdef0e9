// Package config loads, normalizes, and validates clipbatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLIPBATCH_FFMPEG. The Config type centralizes every knob the run command
// needs: directories, manifest layout, the external tool, worker sizing, and
// logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
