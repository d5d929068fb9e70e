//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, without mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

const defaultLogin = "sweeper"

// RefCall records a CreateRef or UpdateRef invocation.
type RefCall struct {
	Owner string
	Name  string
	Ref   string
	SHA   string
	Force bool
}

// CommitCall records a CreateCommit invocation.
type CommitCall struct {
	Owner   string
	Name    string
	Message string
	TreeSHA string
	Parents []string
}

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyHostingRepository struct {
	// --- SearchCode ---
	Pages         map[int]*entities.SearchPage // page -> result; missing pages are empty
	SearchErrs    map[int][]error              // page -> errors returned before the page succeeds
	SearchedPages []int

	// --- GetRepository ---
	Repositories        map[string]entities.RepositoryRef // full name -> metadata
	GetRepositoryErr    error
	FetchedRepositories []string

	// --- ListTopLevel ---
	Listings           map[string][]entities.ContentEntry // full name -> root listing
	ListTopLevelErr    error
	ListedRepositories []string

	// --- AuthenticatedLogin ---
	Login string

	// --- CreateFork ---
	ForkErr            error
	ForkedRepositories []string

	// --- GetCommitSHA / ListCommitParents ---
	HeadSHA    string
	ParentSHAs []string
	CommitRefs []string

	// --- CreateRef / UpdateRef ---
	CreateRefErr error
	CreatedRefs  []RefCall
	UpdatedRefs  []RefCall

	// --- GetBlob / CreateBlob ---
	Blobs           map[string]string // sha -> content
	BlobSHAOverride string            // returned by CreateBlob instead of the content hash
	CreatedBlobs    []string

	// --- CreateTree ---
	CreatedTrees [][]entities.TreeEntry

	// --- CreateCommit ---
	CreatedCommits []CommitCall

	// --- ListOpenPullRequests / CreatePullRequest ---
	OpenPullRequests    []entities.PullRequest
	ListPullRequestsErr error
	CreatePRErr         error
	CreatedPullRequests []entities.PullRequestInput

	// --- GetIgnoreTemplate ---
	IgnoreTemplate    string
	IgnoreTemplateErr error
	TemplateRequests  []string

	// spy: every method name in call order
	Calls []string
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

// Mutations counts the calls that change remote state.
func (s *SpyHostingRepository) Mutations() int {
	return len(s.ForkedRepositories) + len(s.CreatedRefs) + len(s.UpdatedRefs) +
		len(s.CreatedBlobs) + len(s.CreatedTrees) + len(s.CreatedCommits) + len(s.CreatedPullRequests)
}

func (s *SpyHostingRepository) login() string {
	if s.Login == "" {
		return defaultLogin
	}
	return s.Login
}

func (s *SpyHostingRepository) SearchCode(
	_ context.Context, _ string, page int,
) (*entities.SearchPage, error) {
	s.Calls = append(s.Calls, "SearchCode")
	s.SearchedPages = append(s.SearchedPages, page)
	if errs := s.SearchErrs[page]; len(errs) > 0 {
		s.SearchErrs[page] = errs[1:]
		return nil, errs[0]
	}
	if result, ok := s.Pages[page]; ok {
		return result, nil
	}
	return &entities.SearchPage{}, nil
}

func (s *SpyHostingRepository) GetRepository(
	_ context.Context, owner, name string,
) (*entities.RepositoryRef, error) {
	s.Calls = append(s.Calls, "GetRepository")
	fullName := owner + "/" + name
	s.FetchedRepositories = append(s.FetchedRepositories, fullName)
	if s.GetRepositoryErr != nil {
		return nil, s.GetRepositoryErr
	}
	if repo, ok := s.Repositories[fullName]; ok {
		return &repo, nil
	}
	return &entities.RepositoryRef{Owner: owner, Name: name, DefaultBranch: "main"}, nil
}

func (s *SpyHostingRepository) ListTopLevel(
	_ context.Context, owner, name string,
) ([]entities.ContentEntry, error) {
	s.Calls = append(s.Calls, "ListTopLevel")
	fullName := owner + "/" + name
	s.ListedRepositories = append(s.ListedRepositories, fullName)
	if s.ListTopLevelErr != nil {
		return nil, s.ListTopLevelErr
	}
	return s.Listings[fullName], nil
}

func (s *SpyHostingRepository) AuthenticatedLogin(_ context.Context) (string, error) {
	s.Calls = append(s.Calls, "AuthenticatedLogin")
	return s.login(), nil
}

func (s *SpyHostingRepository) CreateFork(
	_ context.Context, owner, name string,
) (*entities.RepositoryRef, error) {
	s.Calls = append(s.Calls, "CreateFork")
	s.ForkedRepositories = append(s.ForkedRepositories, owner+"/"+name)
	if s.ForkErr != nil {
		return nil, s.ForkErr
	}
	return &entities.RepositoryRef{Owner: s.login(), Name: name}, nil
}

func (s *SpyHostingRepository) GetCommitSHA(
	_ context.Context, _, _, ref string,
) (string, error) {
	s.Calls = append(s.Calls, "GetCommitSHA")
	s.CommitRefs = append(s.CommitRefs, ref)
	return s.HeadSHA, nil
}

func (s *SpyHostingRepository) ListCommitParents(
	_ context.Context, _, _, ref string,
) ([]string, error) {
	s.Calls = append(s.Calls, "ListCommitParents")
	s.CommitRefs = append(s.CommitRefs, ref)
	return s.ParentSHAs, nil
}

func (s *SpyHostingRepository) CreateRef(
	_ context.Context, owner, name, ref, sha string,
) error {
	s.Calls = append(s.Calls, "CreateRef")
	s.CreatedRefs = append(s.CreatedRefs, RefCall{Owner: owner, Name: name, Ref: ref, SHA: sha})
	return s.CreateRefErr
}

func (s *SpyHostingRepository) UpdateRef(
	_ context.Context, owner, name, ref, sha string, force bool,
) error {
	s.Calls = append(s.Calls, "UpdateRef")
	s.UpdatedRefs = append(s.UpdatedRefs, RefCall{Owner: owner, Name: name, Ref: ref, SHA: sha, Force: force})
	return nil
}

func (s *SpyHostingRepository) GetBlob(
	_ context.Context, _, _, sha string,
) ([]byte, error) {
	s.Calls = append(s.Calls, "GetBlob")
	content, ok := s.Blobs[sha]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", sha)
	}
	return []byte(content), nil
}

func (s *SpyHostingRepository) CreateBlob(
	_ context.Context, _, _, content string,
) (string, error) {
	s.Calls = append(s.Calls, "CreateBlob")
	s.CreatedBlobs = append(s.CreatedBlobs, content)
	if s.BlobSHAOverride != "" {
		return s.BlobSHAOverride, nil
	}
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(content)).String(), nil
}

func (s *SpyHostingRepository) CreateTree(
	_ context.Context, _, _ string, entries []entities.TreeEntry,
) (string, error) {
	s.Calls = append(s.Calls, "CreateTree")
	s.CreatedTrees = append(s.CreatedTrees, entries)
	return fmt.Sprintf("new-tree-%d", len(s.CreatedTrees)), nil
}

func (s *SpyHostingRepository) CreateCommit(
	_ context.Context, owner, name, message, treeSHA string, parents []string,
) (string, error) {
	s.Calls = append(s.Calls, "CreateCommit")
	s.CreatedCommits = append(s.CreatedCommits, CommitCall{
		Owner: owner, Name: name, Message: message, TreeSHA: treeSHA, Parents: parents,
	})
	return fmt.Sprintf("new-commit-%d", len(s.CreatedCommits)), nil
}

func (s *SpyHostingRepository) ListOpenPullRequests(
	_ context.Context, _, _ string,
) ([]entities.PullRequest, error) {
	s.Calls = append(s.Calls, "ListOpenPullRequests")
	return s.OpenPullRequests, s.ListPullRequestsErr
}

func (s *SpyHostingRepository) CreatePullRequest(
	_ context.Context, owner, name string, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	s.Calls = append(s.Calls, "CreatePullRequest")
	s.CreatedPullRequests = append(s.CreatedPullRequests, input)
	if s.CreatePRErr != nil {
		return nil, s.CreatePRErr
	}
	id := len(s.CreatedPullRequests)
	return &entities.PullRequest{
		ID:     id,
		Title:  input.Title,
		URL:    fmt.Sprintf("https://example.com/%s/%s/pull/%d", owner, name, id),
		Status: "open",
	}, nil
}

func (s *SpyHostingRepository) GetIgnoreTemplate(_ context.Context, ecosystem string) (string, error) {
	s.Calls = append(s.Calls, "GetIgnoreTemplate")
	s.TemplateRequests = append(s.TemplateRequests, ecosystem)
	if s.IgnoreTemplateErr != nil {
		return "", s.IgnoreTemplateErr
	}
	return s.IgnoreTemplate, nil
}
