package entities

// PullRequest is the subset of a hosted pull request the remediation cares about.
type PullRequest struct {
	ID     int
	Title  string
	URL    string
	Status string
}

// PullRequestInput describes a pull request to open against an origin repository.
type PullRequestInput struct {
	Title        string
	Description  string
	SourceBranch string // "<forkOwner>:<branch>"
	TargetBranch string
}
