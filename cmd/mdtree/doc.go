// Package main hosts the mdtree CLI entrypoint and command graph.
//
// The Cobra command tree turns a directory of markdown documents into project
// trees (generate, watch), a project tree back into one document (extract),
// and offers scaffolding and diagnostics (sample, prompt, patterns, doctor,
// config). Configuration is loaded once per invocation and shared by every
// subcommand through commandContext.
//
// Keep this package thin: behaviour lives in internal packages and is only
// surfaced here through flags and tables.
package main
