// Package release drives the release cycle of a project.
//
// Lifecycle manages the branch of the staged version: it creates or renames
// release/{next}, checks branches out and merges the release branch back into
// the main branch after classifying the merge as up-to-date, fast-forward,
// normal or conflicted.
//
// Writer records a release as one commit plus an annotated v{version} tag.
// Either both exist afterwards or the repository is restored to the index
// and HEAD it had before the call.
//
// Engine runs one command per method call (init, next, feat/fix, release,
// reset, changelog) on top of Lifecycle, Writer, the changelog builder and
// the project config. Engine methods return errors and never exit.
package release
