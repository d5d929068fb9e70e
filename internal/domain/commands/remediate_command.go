package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

// Remediate is the interface for the remediation pipeline of one repository.
type Remediate interface {
	Execute(ctx context.Context, candidate Candidate) (*entities.RemediationResult, error)
}

// Candidate is a repository the detector confirmed, with the listing used to detect it.
type Candidate struct {
	Repository entities.RepositoryRef
	Listing    []entities.ContentEntry // optional; the fork's listing is fetched when nil
}

// RemediateCommand forks a repository, commits a tree without the target
// directory on a dedicated branch and opens a pull request back to the origin.
//
// Steps run in a fixed order and are not rolled back: a failure leaves the
// fork and branch in whatever state the last successful call produced.
type RemediateCommand struct {
	hosting     repositories.HostingRepository
	rewriter    *TreeRewriter
	target      string
	remediation entities.RemediationSettings
}

// NewRemediateCommand creates a new RemediateCommand.
func NewRemediateCommand(
	hosting repositories.HostingRepository,
	rewriter *TreeRewriter,
	settings *entities.Settings,
) *RemediateCommand {
	return &RemediateCommand{
		hosting:     hosting,
		rewriter:    rewriter,
		target:      settings.Target.Directory,
		remediation: settings.Remediation,
	}
}

// Execute runs the pipeline against candidate.
func (it *RemediateCommand) Execute(
	ctx context.Context,
	candidate Candidate,
) (*entities.RemediationResult, error) {
	origin := candidate.Repository

	prs, err := it.hosting.ListOpenPullRequests(ctx, origin.Owner, origin.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	if HasOpenRemediation(prs, it.remediation.DuplicateMarker) {
		logger.Infof("%s already has an open remediation pull request, skipping", origin.FullName())
		return &entities.RemediationResult{Skipped: true}, nil
	}

	login, err := it.hosting.AuthenticatedLogin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting identity: %w", err)
	}
	fork, err := it.hosting.CreateFork(ctx, origin.Owner, origin.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fork: %w", err)
	}
	logger.Debugf("Using fork %s/%s", login, fork.Name)

	branchPoint, err := it.hosting.GetCommitSHA(ctx, login, fork.Name, "heads/"+origin.DefaultBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s head: %w", origin.DefaultBranch, err)
	}

	branchRef := "refs/heads/" + it.remediation.Branch
	if err = it.hosting.CreateRef(ctx, login, fork.Name, branchRef, branchPoint); err != nil {
		return nil, fmt.Errorf("failed to create branch %s: %w", it.remediation.Branch, err)
	}

	listing := candidate.Listing
	if listing == nil {
		if listing, err = it.hosting.ListTopLevel(ctx, login, fork.Name); err != nil {
			return nil, fmt.Errorf("failed to list fork contents: %w", err)
		}
	}
	rewrite, err := it.rewriter.Rewrite(ctx, login, fork.Name, listing)
	if err != nil {
		return nil, err
	}

	shortRef := "heads/" + it.remediation.Branch
	history, err := it.hosting.ListCommitParents(ctx, login, fork.Name, shortRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read branch history: %w", err)
	}

	treeSHA, err := it.hosting.CreateTree(ctx, login, fork.Name, rewrite.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree: %w", err)
	}
	// The branch point leads the parent list, followed by the parents of the
	// branch head, which yields a merge-shaped commit.
	parents := append([]string{branchPoint}, history...)
	commitSHA, err := it.hosting.CreateCommit(ctx, login, fork.Name, "remove "+it.target, treeSHA, parents)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}

	if err = it.hosting.UpdateRef(ctx, login, fork.Name, shortRef, commitSHA, true); err != nil {
		return nil, fmt.Errorf("failed to update branch %s: %w", it.remediation.Branch, err)
	}

	pr, err := it.hosting.CreatePullRequest(ctx, origin.Owner, origin.Name, entities.PullRequestInput{
		Title:        it.remediation.Title,
		Description:  pullRequestBody(it.target, rewrite.Patch),
		SourceBranch: login + ":" + it.remediation.Branch,
		TargetBranch: origin.DefaultBranch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	logger.Infof("Created PR for %s: %s", origin.FullName(), pr.URL)

	return &entities.RemediationResult{
		ForkOwner:   login,
		Branch:      it.remediation.Branch,
		CommitSHA:   commitSHA,
		Patch:       rewrite.Patch,
		PullRequest: pr,
	}, nil
}

// HasOpenRemediation reports whether any pull request title contains marker,
// ignoring case. Matching is on title text only, so unrelated titles that
// happen to contain the marker also count.
func HasOpenRemediation(prs []entities.PullRequest, marker string) bool {
	needle := strings.ToLower(marker)
	for _, pr := range prs {
		if strings.Contains(strings.ToLower(pr.Title), needle) {
			return true
		}
	}
	return false
}

func pullRequestBody(target string, patch entities.IgnorePatch) string {
	body := fmt.Sprintf("I have detected the existence of a %s folder in your repo, this PR removes it", target)
	if patch.Modified() {
		body += " and adds it to your .gitignore"
	}
	return body
}
