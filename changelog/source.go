package changelog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Source reads history for the assembler.
type Source interface {
	// Commits returns the history reachable from HEAD, newest first.
	Commits() ([]Commit, error)

	// Tags returns tags matching pattern ordered by tagged commit time,
	// oldest first. A nil pattern matches every tag.
	Tags(pattern *regexp.Regexp) (*TagSet, error)
}

// GoGitSource reads history with go-git.
type GoGitSource struct {
	repo *gogit.Repository
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGitSource, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}
	return &GoGitSource{repo: repo}, nil
}

// Commits implements Source. An empty repository has no commits.
func (s *GoGitSource) Commits() ([]Commit, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := s.repo.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, Commit{
			ID:        c.Hash.String(),
			Message:   c.Message,
			Author:    c.Author.Name,
			Timestamp: c.Committer.When.Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return commits, nil
}

// Tags implements Source. Annotated tags are peeled to their commit; tags
// that do not point at a commit are skipped.
func (s *GoGitSource) Tags(pattern *regexp.Regexp) (*TagSet, error) {
	iter, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer iter.Close()

	type tagged struct {
		name   string
		commit string
		when   int64
	}
	var found []tagged

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if pattern != nil && !pattern.MatchString(name) {
			return nil
		}
		commit, err := s.peel(ref.Hash())
		if err != nil {
			return nil
		}
		found = append(found, tagged{
			name:   name,
			commit: commit.Hash.String(),
			when:   commit.Committer.When.Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk tags: %w", err)
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].when != found[j].when {
			return found[i].when < found[j].when
		}
		return found[i].name < found[j].name
	})

	set := NewTagSet()
	for _, t := range found {
		set.Insert(t.commit, t.name)
	}
	return set, nil
}

func (s *GoGitSource) peel(hash plumbing.Hash) (*object.Commit, error) {
	if tag, err := s.repo.TagObject(hash); err == nil {
		return tag.Commit()
	}
	return s.repo.CommitObject(hash)
}

// StaticSource serves fixed history, for tests and callers that already
// hold the commits.
type StaticSource struct {
	History []Commit // Newest first
	TagList *TagSet
}

// Commits implements Source.
func (s *StaticSource) Commits() ([]Commit, error) {
	return s.History, nil
}

// Tags implements Source.
func (s *StaticSource) Tags(pattern *regexp.Regexp) (*TagSet, error) {
	if s.TagList == nil {
		return NewTagSet(), nil
	}
	if pattern == nil {
		return s.TagList.Filter(func(string) bool { return true }), nil
	}
	return s.TagList.Filter(pattern.MatchString), nil
}
