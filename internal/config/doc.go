// Package config loads, normalizes, and validates mediatrim configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/mediatrim/config.toml or a
// project-local mediatrim.toml. Language lists and extensions come back
// lowercased so downstream selection never has to care about case.
package config
