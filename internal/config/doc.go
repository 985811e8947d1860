// Package config loads, normalizes, and validates smartsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SMARTSORT_LLM_API_KEY. The Config type centralizes every knob the CLI and
// the organizer need, so source/target roots, the classification endpoint,
// and the journal location are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
