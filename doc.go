// Package rellr automates semantic-version releases of git projects.
//
// A release cycle stages the next version on a release/{version} branch,
// merges that branch back into the main branch, rewrites package manifests
// and the changelog, and records the release as one commit plus a
// v{version} tag.
//
// # Packages
//
//   - version: version parsing, bumping and the branch naming scheme
//   - git: git operations through a pluggable CommandRunner
//   - release: branch lifecycle, atomic commit and tag, command engine
//   - changelog: release chain assembly from history and markdown rendering
//   - config: rellr.json project state and layered tool settings
//   - manifest: Cargo and npm version rewriting and publishing
//   - forge: hosted release notes on GitHub and GitLab
//   - notify: release announcements to logs, webhooks and Slack
//   - msg: colored console messages
//   - errors: CLI error messages and fatal/warning classification
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/rellr/release"
//	    "github.com/randalmurphal/rellr/version"
//	)
//
//	engine := release.NewEngine("/path/to/project", nil, nil)
//
//	// Create rellr.json at 1.2.3
//	_, _ = engine.Init("demo", "1.2.3")
//
//	// Stage 1.2.4 on release/1.2.4 and check it out
//	_, _ = engine.Next(ctx, version.Patch)
//
//	// Merge, rewrite manifests and changelog, commit and tag v1.2.4
//	result, err := engine.Release(ctx, release.Options{})
//
// The rellr command in cmd/rellr wires these together with layered settings
// and colored output.
package rellr
