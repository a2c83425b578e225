// Package config loads, normalizes, and validates mdtree configuration.
//
// Configuration lives in a TOML file (by default ~/.config/mdtree/config.toml,
// falling back to ./mdtree.toml). Load starts from Default, decodes the file
// on top, applies environment overrides, expands paths, and validates the
// result. CreateSample writes the embedded sample file used by
// `mdtree config init`.
package config
