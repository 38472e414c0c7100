package changelog

import (
	"log/slog"
	"regexp"
	"strings"
)

// DefaultTagPattern matches release tags.
const DefaultTagPattern = `^v[0-9]+\.[0-9]+\.[0-9]+`

// Options control how history is partitioned into releases.
type Options struct {
	TagPattern   string // Tags considered at all
	SkipTags     string // Tags that bound releases but are not rendered
	IgnoreTags   string // Tags dropped entirely unless also skipped
	LimitCommits int    // Newest commits kept; 0 keeps all
	TipTag       string // Assigned to the newest commit when untagged
}

// Patterns holds the compiled tag expressions of Options.
type Patterns struct {
	Tag    *regexp.Regexp
	Skip   *regexp.Regexp
	Ignore *regexp.Regexp
}

// Compile compiles the tag expressions. Blank expressions never match.
func (o Options) Compile() (*Patterns, error) {
	pattern := o.TagPattern
	if pattern == "" {
		pattern = DefaultTagPattern
	}

	p := &Patterns{}
	var err error
	if p.Tag, err = regexp.Compile(pattern); err != nil {
		return nil, err
	}
	if p.Skip, err = compileOptional(o.SkipTags); err != nil {
		return nil, err
	}
	if p.Ignore, err = compileOptional(o.IgnoreTags); err != nil {
		return nil, err
	}
	return p, nil
}

// Skipped reports whether a tag is matched by the skip expression.
func (p *Patterns) Skipped(name string) bool {
	return p.Skip != nil && p.Skip.MatchString(name)
}

// Ignored reports whether a tag is matched by the ignore expression.
func (p *Patterns) Ignored(name string) bool {
	return p.Ignore != nil && p.Ignore.MatchString(name)
}

func compileOptional(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return regexp.Compile(expr)
}

// Assemble partitions commits (newest first) into a release chain bounded by
// tags. tags is not modified.
func Assemble(commits []Commit, tags *TagSet, opts Options, logger *slog.Logger) (*Chain, error) {
	if logger == nil {
		logger = slog.Default()
	}
	patterns, err := opts.Compile()
	if err != nil {
		return nil, err
	}

	tags = tags.Filter(func(name string) bool {
		return patterns.Skipped(name) || !patterns.Ignored(name)
	})

	if opts.LimitCommits > 0 && len(commits) > opts.LimitCommits {
		commits = commits[:opts.LimitCommits]
	}

	if len(commits) > 0 && opts.TipTag != "" {
		tip := commits[0].ID
		if existing, ok := tags.Get(tip); ok {
			if existing != opts.TipTag {
				logger.Warn("tip commit already tagged, keeping existing tag",
					"commit", tip, "tag", existing, "tip_tag", opts.TipTag)
			}
		} else {
			tags.Insert(tip, opts.TipTag)
		}
	}

	chain := NewChain()
	lastSealed := -1
	firstBoundary := ""
	open := Release{Previous: -1}

	for i := len(commits) - 1; i >= 0; i-- {
		commit := commits[i]
		open.Commits = append(open.Commits, commit)

		name, ok := tags.Get(commit.ID)
		if !ok {
			continue
		}
		open.Version = name
		open.CommitID = commit.ID
		open.Timestamp = commit.Timestamp
		open.Previous = lastSealed
		chain.Releases = append(chain.Releases, open)
		lastSealed = len(chain.Releases) - 1
		if firstBoundary == "" {
			firstBoundary = name
		}
		open = Release{Previous: -1}
	}

	if len(open.Commits) > 0 {
		open.Previous = lastSealed
		chain.Releases = append(chain.Releases, open)
		chain.Head = len(chain.Releases) - 1
	} else {
		chain.Head = lastSealed
	}

	if len(chain.Releases) > 0 && chain.Releases[0].Previous < 0 {
		attachPreviousTag(chain, tags, firstBoundary)
	}

	logger.Debug("assembled changelog",
		"commits", len(commits), "releases", len(chain.Releases), "tags", tags.Len())
	return chain, nil
}

// attachPreviousTag links the oldest release to a zero-commit release for the
// tag before the first boundary tag, or the oldest tag when no boundary was
// crossed.
func attachPreviousTag(chain *Chain, tags *TagSet, firstBoundary string) {
	idx := -1
	if firstBoundary != "" {
		if i := tags.IndexOf(firstBoundary); i > 0 {
			idx = i - 1
		}
	} else if tags.Len() > 0 {
		idx = 0
	}
	if idx < 0 {
		return
	}

	commit, name := tags.At(idx)
	oldest := &chain.Releases[0]
	if name == oldest.Version {
		return
	}

	chain.Releases = append(chain.Releases, Release{
		Version:  name,
		CommitID: commit,
		Previous: -1,
	})
	chain.Releases[0].Previous = len(chain.Releases) - 1
}
