package changelog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	cc "github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
	"github.com/randalmurphal/rellr/git"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateOverride is the project-relative path of a custom changelog
// template. It is parsed on top of the built-in one, so it may redefine the
// main body, the "release" block, or both.
const TemplateOverride = ".rellr/changelog.tmpl"

// OtherTitle is the section for commits that are not conventional commits.
const OtherTitle = "Other"

// Entry is one changelog line.
type Entry struct {
	ID          string
	ShortID     string
	Type        string
	Scope       string
	Description string
	Author      string
	Breaking    bool
}

// Section groups entries of one commit type.
type Section struct {
	Title   string
	Entries []Entry

	rank int
}

// ReleaseView is the template data for one release.
type ReleaseView struct {
	Tag      string // e.g. "v1.3.0"; empty when unreleased
	Version  string // Tag without the leading "v"
	Previous string // Tag of the preceding release, if any
	CommitID string
	Date     string // YYYY-MM-DD of the boundary commit
	Sections []Section
}

// View is the template data for a whole changelog.
type View struct {
	Releases []ReleaseView
}

// Renderer turns release chains into markdown.
type Renderer struct {
	tmpl    *template.Template
	machine cc.Machine
	skip    *regexp.Regexp
}

// NewRenderer creates a renderer for the project at dir. Releases whose tag
// matches skip are not rendered.
func NewRenderer(dir string, skip *regexp.Regexp) (*Renderer, error) {
	base, err := embeddedTemplates.ReadFile("templates/changelog.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read built-in template: %w", err)
	}

	tmpl, err := template.New("changelog").Funcs(funcMap()).Parse(string(base))
	if err != nil {
		return nil, fmt.Errorf("parse built-in template: %w", err)
	}

	if dir != "" {
		custom, err := os.ReadFile(filepath.Join(dir, TemplateOverride))
		switch {
		case err == nil:
			if tmpl, err = tmpl.Parse(string(custom)); err != nil {
				return nil, fmt.Errorf("parse %s: %w", TemplateOverride, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", TemplateOverride, err)
		}
	}

	return &Renderer{
		tmpl: tmpl,
		machine: parser.NewMachine(
			cc.WithTypes(cc.TypesConventional),
			cc.WithBestEffort(),
		),
		skip: skip,
	}, nil
}

// Render writes the full changelog, newest release first.
func (r *Renderer) Render(w io.Writer, chain *Chain) error {
	if err := r.tmpl.Execute(w, r.View(chain)); err != nil {
		return fmt.Errorf("render changelog: %w", err)
	}
	return nil
}

// RenderLatest writes only the newest rendered release.
func (r *Renderer) RenderLatest(w io.Writer, chain *Chain) error {
	view := r.View(chain)
	if len(view.Releases) == 0 {
		return nil
	}
	if err := r.tmpl.ExecuteTemplate(w, "release", view.Releases[0]); err != nil {
		return fmt.Errorf("render release notes: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(chain *Chain) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, chain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// View builds template data for the chain. Empty and skipped releases are
// left out.
func (r *Renderer) View(chain *Chain) View {
	var view View
	for _, rel := range chain.Walk() {
		if len(rel.Commits) == 0 {
			continue
		}
		if rel.Version != "" && r.skip != nil && r.skip.MatchString(rel.Version) {
			continue
		}

		rv := ReleaseView{
			Tag:      rel.Version,
			Version:  strings.TrimPrefix(rel.Version, "v"),
			CommitID: rel.CommitID,
			Sections: r.sections(rel.Commits),
		}
		if prev, ok := chain.PreviousOf(rel); ok {
			rv.Previous = prev.Version
		}
		if rel.Version != "" && rel.Timestamp > 0 {
			rv.Date = time.Unix(rel.Timestamp, 0).UTC().Format("2006-01-02")
		}
		view.Releases = append(view.Releases, rv)
	}
	return view
}

// sections groups commits by conventional type, newest commit first within
// each section.
func (r *Renderer) sections(commits []Commit) []Section {
	byTitle := make(map[string]*Section)
	for i := len(commits) - 1; i >= 0; i-- {
		entry := r.Parse(commits[i])
		title, rank := sectionFor(entry.Type)
		sec, ok := byTitle[title]
		if !ok {
			sec = &Section{Title: title, rank: rank}
			byTitle[title] = sec
		}
		sec.Entries = append(sec.Entries, entry)
	}

	out := make([]Section, 0, len(byTitle))
	for _, sec := range byTitle {
		out = append(out, *sec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rank != out[j].rank {
			return out[i].rank < out[j].rank
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Parse categorises a commit. Commits that are not conventional commits get
// an empty Type and their summary as the description.
func (r *Renderer) Parse(c Commit) Entry {
	entry := Entry{
		ID:          c.ID,
		ShortID:     c.ShortID(),
		Author:      c.Author,
		Description: c.Summary(),
	}

	msg, _ := r.machine.Parse([]byte(strings.TrimSpace(c.Message)))
	conv, ok := msg.(*cc.ConventionalCommit)
	if !ok || conv == nil || conv.Type == "" || conv.Description == "" {
		return entry
	}

	entry.Type = strings.ToLower(conv.Type)
	entry.Description = conv.Description
	entry.Breaking = conv.IsBreakingChange()
	if conv.Scope != nil {
		entry.Scope = *conv.Scope
	}
	return entry
}

func sectionFor(commitType string) (string, int) {
	t := git.CommitType(commitType)
	if title := t.Title(); title != "" {
		return title, t.Rank()
	}
	return OtherTitle, t.Rank()
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"upperFirst": upperFirst,
		"title":      cases.Title(language.English).String,
		"trimPrefix": strings.TrimPrefix,
		"join":       strings.Join,
		"lower":      strings.ToLower,
	}
}

// upperFirst capitalises the first word and leaves the rest untouched.
func upperFirst(s string) string {
	word, rest, found := strings.Cut(s, " ")
	word = cases.Title(language.English, cases.NoLower).String(word)
	if !found {
		return word
	}
	return word + " " + rest
}
