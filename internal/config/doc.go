// Package config loads, normalizes, and validates ngramsubset configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies NGRAMSUBSET_* environment
// overrides plus the standard AWS/MinIO credential variables as fallbacks.
// The Config type centralizes every knob the CLI needs: where the full table
// comes from, which sink receives artifacts, and how logging is rendered.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
