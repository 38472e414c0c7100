package changelog

// TagSet maps commit ids to tag names, preserving insertion order.
type TagSet struct {
	commits []string
	names   map[string]string
}

// NewTagSet returns an empty tag set.
func NewTagSet() *TagSet {
	return &TagSet{names: make(map[string]string)}
}

// Len returns the number of tagged commits.
func (s *TagSet) Len() int {
	return len(s.commits)
}

// Get returns the tag for a commit.
func (s *TagSet) Get(commit string) (string, bool) {
	name, ok := s.names[commit]
	return name, ok
}

// Insert appends a tag for commit. A commit that is already tagged keeps its
// position and takes the new name.
func (s *TagSet) Insert(commit, name string) {
	if _, ok := s.names[commit]; !ok {
		s.commits = append(s.commits, commit)
	}
	s.names[commit] = name
}

// IndexOf returns the position of the tag named name, or -1.
func (s *TagSet) IndexOf(name string) int {
	for i, commit := range s.commits {
		if s.names[commit] == name {
			return i
		}
	}
	return -1
}

// At returns the commit and tag at position i.
func (s *TagSet) At(i int) (commit, name string) {
	commit = s.commits[i]
	return commit, s.names[commit]
}

// Filter returns a new set with the tags for which keep returns true.
func (s *TagSet) Filter(keep func(name string) bool) *TagSet {
	out := NewTagSet()
	for _, commit := range s.commits {
		if name := s.names[commit]; keep(name) {
			out.Insert(commit, name)
		}
	}
	return out
}

// Names returns the tag names in order.
func (s *TagSet) Names() []string {
	out := make([]string, len(s.commits))
	for i, commit := range s.commits {
		out[i] = s.names[commit]
	}
	return out
}
