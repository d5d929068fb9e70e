package github

import (
	"context"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

const (
	perPage      = 100
	blobEncoding = "utf-8"
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	client *gh.Client
}

// NewHostingRepository creates a GitHub hosting repository authenticated with the settings' token.
func NewHostingRepository(settings *entities.Settings) repositories.HostingRepository {
	client := gh.NewClient(newHTTPClient(settings.Token, settings.API.MinInterval))
	return NewHostingRepositoryWithClient(client)
}

// NewHostingRepositoryWithClient wraps an already configured go-github client.
func NewHostingRepositoryWithClient(client *gh.Client) *GitHubHostingRepository {
	return &GitHubHostingRepository{client: client}
}

func (p *GitHubHostingRepository) SearchCode(
	ctx context.Context,
	query string,
	page int,
) (*entities.SearchPage, error) {
	result, _, err := p.client.Search.Code(ctx, query, &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: page},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search code: %w", err)
	}

	items := make([]entities.RepositoryRef, 0, len(result.CodeResults))
	for _, code := range result.CodeResults {
		repo := code.GetRepository()
		if repo == nil {
			continue
		}
		items = append(items, entities.RepositoryRef{
			Owner: repo.GetOwner().GetLogin(),
			Name:  repo.GetName(),
		})
	}
	return &entities.SearchPage{Total: result.GetTotal(), Items: items}, nil
}

func (p *GitHubHostingRepository) GetRepository(
	ctx context.Context,
	owner, name string,
) (*entities.RepositoryRef, error) {
	repo, _, err := p.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}
	return toRepositoryRef(repo), nil
}

func (p *GitHubHostingRepository) ListTopLevel(
	ctx context.Context,
	owner, name string,
) ([]entities.ContentEntry, error) {
	_, dir, _, err := p.client.Repositories.GetContents(
		ctx, owner, name, "",
		&gh.RepositoryContentGetOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list root contents: %w", err)
	}
	if dir == nil {
		return nil, errors.New("repository root is not a directory")
	}

	entries := make([]entities.ContentEntry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, entities.ContentEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: entities.ContentType(item.GetType()),
			SHA:  item.GetSHA(),
		})
	}
	return entries, nil
}

func (p *GitHubHostingRepository) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	return user.GetLogin(), nil
}

// CreateFork treats GitHub's 202 Accepted as success: the fork is created asynchronously.
func (p *GitHubHostingRepository) CreateFork(
	ctx context.Context,
	owner, name string,
) (*entities.RepositoryRef, error) {
	fork, _, err := p.client.Repositories.CreateFork(ctx, owner, name, &gh.RepositoryCreateForkOptions{})
	var accepted *gh.AcceptedError
	if err != nil && !errors.As(err, &accepted) {
		return nil, fmt.Errorf("failed to create fork: %w", err)
	}
	if fork == nil || fork.GetName() == "" {
		return &entities.RepositoryRef{Name: name}, nil
	}
	return toRepositoryRef(fork), nil
}

func (p *GitHubHostingRepository) GetCommitSHA(
	ctx context.Context,
	owner, name, ref string,
) (string, error) {
	commit, _, err := p.client.Repositories.GetCommit(ctx, owner, name, ref, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %q: %w", ref, err)
	}
	return commit.GetSHA(), nil
}

func (p *GitHubHostingRepository) ListCommitParents(
	ctx context.Context,
	owner, name, ref string,
) ([]string, error) {
	commit, _, err := p.client.Repositories.GetCommit(ctx, owner, name, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %q: %w", ref, err)
	}
	parents := make([]string, 0, len(commit.Parents))
	for _, parent := range commit.Parents {
		parents = append(parents, parent.GetSHA())
	}
	return parents, nil
}

func (p *GitHubHostingRepository) CreateRef(
	ctx context.Context,
	owner, name, ref, sha string,
) error {
	_, _, err := p.client.Git.CreateRef(ctx, owner, name, &gh.Reference{
		Ref:    &ref,
		Object: &gh.GitObject{SHA: &sha},
	})
	if err != nil {
		return fmt.Errorf("failed to create ref %q: %w", ref, err)
	}
	return nil
}

func (p *GitHubHostingRepository) UpdateRef(
	ctx context.Context,
	owner, name, ref, sha string,
	force bool,
) error {
	_, _, err := p.client.Git.UpdateRef(ctx, owner, name, &gh.Reference{
		Ref:    &ref,
		Object: &gh.GitObject{SHA: &sha},
	}, force)
	if err != nil {
		return fmt.Errorf("failed to update ref %q: %w", ref, err)
	}
	return nil
}

func (p *GitHubHostingRepository) GetBlob(
	ctx context.Context,
	owner, name, sha string,
) ([]byte, error) {
	data, _, err := p.client.Git.GetBlobRaw(ctx, owner, name, sha)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob %s: %w", sha, err)
	}
	return data, nil
}

func (p *GitHubHostingRepository) CreateBlob(
	ctx context.Context,
	owner, name, content string,
) (string, error) {
	encoding := blobEncoding
	blob, _, err := p.client.Git.CreateBlob(ctx, owner, name, &gh.Blob{
		Content:  &content,
		Encoding: &encoding,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	return blob.GetSHA(), nil
}

func (p *GitHubHostingRepository) CreateTree(
	ctx context.Context,
	owner, name string,
	entries []entities.TreeEntry,
) (string, error) {
	treeEntries := make([]*gh.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return "", err
		}
		treeEntries = append(treeEntries, toTreeEntry(entry))
	}

	tree, _, err := p.client.Git.CreateTree(ctx, owner, name, "", treeEntries)
	if err != nil {
		return "", fmt.Errorf("failed to create tree: %w", err)
	}
	return tree.GetSHA(), nil
}

func (p *GitHubHostingRepository) CreateCommit(
	ctx context.Context,
	owner, name, message, treeSHA string,
	parents []string,
) (string, error) {
	parentCommits := make([]*gh.Commit, 0, len(parents))
	for _, parent := range parents {
		sha := parent
		parentCommits = append(parentCommits, &gh.Commit{SHA: &sha})
	}

	commit, _, err := p.client.Git.CreateCommit(
		ctx, owner, name,
		&gh.Commit{
			Message: &message,
			Tree:    &gh.Tree{SHA: &treeSHA},
			Parents: parentCommits,
		},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return commit.GetSHA(), nil
}

func (p *GitHubHostingRepository) ListOpenPullRequests(
	ctx context.Context,
	owner, name string,
) ([]entities.PullRequest, error) {
	var all []entities.PullRequest
	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		prs, resp, err := p.client.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, pr := range prs {
			all = append(all, toPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (p *GitHubHostingRepository) CreatePullRequest(
	ctx context.Context,
	owner, name string,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	maintainerCanModify := true
	pr, _, err := p.client.PullRequests.Create(
		ctx, owner, name,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &input.SourceBranch,
			Base:                &input.TargetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	created := toPullRequest(pr)
	return &created, nil
}

func (p *GitHubHostingRepository) GetIgnoreTemplate(ctx context.Context, ecosystem string) (string, error) {
	template, _, err := p.client.Gitignores.Get(ctx, ecosystem)
	if err != nil {
		return "", fmt.Errorf("failed to get gitignore template %q: %w", ecosystem, err)
	}
	return template.GetSource(), nil
}

func toRepositoryRef(repo *gh.Repository) *entities.RepositoryRef {
	return &entities.RepositoryRef{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Size:          repo.GetSize(),
	}
}

func toPullRequest(pr *gh.PullRequest) entities.PullRequest {
	return entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}
}

func toTreeEntry(entry entities.TreeEntry) *gh.TreeEntry {
	path := entry.Path
	mode := entry.ModeString()
	entryType := entry.Type.String()
	treeEntry := &gh.TreeEntry{
		Path: &path,
		Mode: &mode,
		Type: &entryType,
	}
	if entry.Inline {
		content := entry.Content
		treeEntry.Content = &content
	} else {
		sha := entry.SHA
		treeEntry.SHA = &sha
	}
	return treeEntry
}
