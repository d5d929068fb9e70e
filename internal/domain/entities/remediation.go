package entities

// IgnorePatch is the decision taken for the repository's .gitignore.
type IgnorePatch int

const (
	// IgnorePatchNone leaves an existing .gitignore that already excludes the target untouched.
	IgnorePatchNone IgnorePatch = iota
	// IgnorePatchAppend appends the exclusion line to an existing .gitignore.
	IgnorePatchAppend
	// IgnorePatchTemplate materializes the ecosystem's default template as a new .gitignore.
	IgnorePatchTemplate
)

func (p IgnorePatch) String() string {
	switch p {
	case IgnorePatchAppend:
		return "append"
	case IgnorePatchTemplate:
		return "template"
	default:
		return "none"
	}
}

// Modified reports whether the .gitignore changed.
func (p IgnorePatch) Modified() bool {
	return p != IgnorePatchNone
}

// TreeRewrite is the output of rewriting a top-level listing.
type TreeRewrite struct {
	Entries []TreeEntry
	Patch   IgnorePatch
}

// RemediationResult summarizes one remediation attempt.
type RemediationResult struct {
	Skipped     bool // an open remediation pull request already exists
	ForkOwner   string
	Branch      string
	CommitSHA   string
	Patch       IgnorePatch
	PullRequest *PullRequest
}
