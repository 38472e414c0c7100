// Package config holds the two kinds of rellr configuration.
//
// Project state lives in rellr.json next to the sources and is committed with
// every release:
//
//	p, err := config.LoadProject(dir)
//	state := p.State()
//	// ... bump, release ...
//	p.Apply(state)
//	err = p.Save()
//
// Tool settings are layered, with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (RELLR_*)
//  3. Local settings (.rellr.yaml in the git root)
//  4. Global settings (~/.config/rellr/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// Resolve and validate them with:
//
//	resolver := config.NewSettingsResolver(dir, logger)
//	settings, err := config.ParseSettings(resolver.ResolveWithFlags(flags))
//
// Each resolved value tracks where it came from (see Source), which
// "rellr config list" prints.
package config
