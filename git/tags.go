package git

// TagExists checks if a tag exists.
func (g *Context) TagExists(name string) bool {
	_, err := g.runGit("rev-parse", "--verify", "--quiet", "refs/tags/"+name)
	return err == nil
}

// CreateAnnotatedTag creates an annotated tag at target.
// Returns ErrTagExists if the tag is already present.
func (g *Context) CreateAnnotatedTag(name, target, message string, id Identity) error {
	if g.TagExists(name) {
		return ErrTagExists
	}
	args := []string{
		"-c", "user.name=" + id.Name,
		"-c", "user.email=" + id.Email,
		"tag", "-a", name, "-m", message,
	}
	if target != "" {
		args = append(args, target)
	}
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "create tag", Err: err}
	}
	return nil
}

// DeleteTag deletes a local tag.
func (g *Context) DeleteTag(name string) error {
	if _, err := g.runGit("tag", "-d", name); err != nil {
		return &Error{Op: "delete tag", Err: err}
	}
	return nil
}
