package git

// CommitType represents the type of change in a conventional commit.
type CommitType string

const (
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeStyle    CommitType = "style"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypePerf     CommitType = "perf"
	CommitTypeTest     CommitType = "test"
	CommitTypeBuild    CommitType = "build"
	CommitTypeCI       CommitType = "ci"
	CommitTypeChore    CommitType = "chore"
	CommitTypeRevert   CommitType = "revert"
)

// commitTypeOrder is the order sections appear in a changelog.
var commitTypeOrder = []CommitType{
	CommitTypeFeat,
	CommitTypeFix,
	CommitTypePerf,
	CommitTypeRefactor,
	CommitTypeDocs,
	CommitTypeStyle,
	CommitTypeTest,
	CommitTypeBuild,
	CommitTypeCI,
	CommitTypeChore,
	CommitTypeRevert,
}

var commitTypeTitles = map[CommitType]string{
	CommitTypeFeat:     "Features",
	CommitTypeFix:      "Bug Fixes",
	CommitTypeDocs:     "Documentation",
	CommitTypeStyle:    "Styling",
	CommitTypeRefactor: "Refactor",
	CommitTypePerf:     "Performance",
	CommitTypeTest:     "Testing",
	CommitTypeBuild:    "Build",
	CommitTypeCI:       "Continuous Integration",
	CommitTypeChore:    "Miscellaneous Tasks",
	CommitTypeRevert:   "Revert",
}

// Title returns the changelog section title for the type, or "" if the
// type is not a known conventional commit type.
func (t CommitType) Title() string {
	return commitTypeTitles[t]
}

// Rank returns the section order of the type; unknown types sort last.
func (t CommitType) Rank() int {
	for i, known := range commitTypeOrder {
		if known == t {
			return i
		}
	}
	return len(commitTypeOrder)
}
