// Package changelog partitions git history into releases bounded by version
// tags and renders them as markdown.
//
// History is read through a Source (GoGitSource uses go-git). Assemble walks
// the commits oldest to newest and seals a Release at every tagged commit;
// the newest commit receives the tip tag (for example "v1.3.0") when it is
// not tagged yet. Releases live in a Chain arena and link to their
// predecessor by index.
//
// Rendering groups commits by conventional commit type. The built-in
// template can be replaced per project with .rellr/changelog.tmpl.
//
//	b := changelog.NewBuilder(dir, changelog.Options{TipTag: "v1.3.0"}, logger)
//	path, err := b.Build()
package changelog
