package repositories

import (
	"context"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
)

// HostingRepository abstracts the code-hosting platform's REST API. Every
// method is a single blocking remote call (list methods may follow pagination).
type HostingRepository interface {
	// SearchCode runs a code-search query and returns the owning repositories of one result page.
	SearchCode(ctx context.Context, query string, page int) (*entities.SearchPage, error)

	// GetRepository fetches repository metadata, including its default branch.
	GetRepository(ctx context.Context, owner, name string) (*entities.RepositoryRef, error)

	// ListTopLevel returns the repository's root directory listing.
	ListTopLevel(ctx context.Context, owner, name string) ([]entities.ContentEntry, error)

	// AuthenticatedLogin returns the login of the acting identity.
	AuthenticatedLogin(ctx context.Context) (string, error)

	// CreateFork forks the repository under the acting identity, reusing an existing fork.
	CreateFork(ctx context.Context, owner, name string) (*entities.RepositoryRef, error)

	// GetCommitSHA resolves a ref (e.g. "heads/main") to its commit SHA.
	GetCommitSHA(ctx context.Context, owner, name, ref string) (string, error)

	// ListCommitParents returns the parent SHAs of the commit a ref points at.
	ListCommitParents(ctx context.Context, owner, name, ref string) ([]string, error)

	// CreateRef creates a fully qualified ref (e.g. "refs/heads/x") at sha.
	CreateRef(ctx context.Context, owner, name, ref, sha string) error

	// UpdateRef moves an existing ref to sha.
	UpdateRef(ctx context.Context, owner, name, ref, sha string, force bool) error

	// GetBlob returns the raw bytes of a blob.
	GetBlob(ctx context.Context, owner, name, sha string) ([]byte, error)

	// CreateBlob uploads content and returns the new blob SHA.
	CreateBlob(ctx context.Context, owner, name, content string) (string, error)

	// CreateTree creates a tree from scratch and returns its SHA.
	CreateTree(ctx context.Context, owner, name string, entries []entities.TreeEntry) (string, error)

	// CreateCommit creates a commit object and returns its SHA.
	CreateCommit(ctx context.Context, owner, name, message, treeSHA string, parents []string) (string, error)

	// ListOpenPullRequests returns every open pull request of the repository.
	ListOpenPullRequests(ctx context.Context, owner, name string) ([]entities.PullRequest, error)

	// CreatePullRequest opens a pull request against the repository.
	CreatePullRequest(
		ctx context.Context,
		owner, name string,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)

	// GetIgnoreTemplate returns the host's default .gitignore template for an ecosystem.
	GetIgnoreTemplate(ctx context.Context, ecosystem string) (string, error)
}
