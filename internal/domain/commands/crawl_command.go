package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/modsweep/internal/infrastructure/repositories"
)

// remediationAttempts is the first attempt plus one retry.
const remediationAttempts = 2

// ErrCheckpointPersist wraps failures to save the checkpoint. The crawl cannot
// continue without a persisted checkpoint.
var ErrCheckpointPersist = errors.New("failed to persist checkpoint")

// Crawl is the interface for the crawl command.
type Crawl interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CrawlOptions) error
}

// CrawlOptions holds runtime options for a single crawl.
type CrawlOptions struct {
	MaxPages int  // Stop after this many completed pages; 0 crawls until the context ends
	DryRun   bool // Detect and log only: no remote mutations, checkpoint kept in memory
	Verbose  bool
}

// CrawlCommand walks the code-search result set page by page, classifies each
// repository and remediates those holding the target directory.
type CrawlCommand struct {
	providerRegistry  *infraRepos.ProviderRegistry
	checkpointFactory infraRepos.CheckpointFactory
	templates         *TemplateCache
	sleeper           Sleeper
}

// NewCrawlCommand creates a new CrawlCommand.
func NewCrawlCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	checkpointFactory infraRepos.CheckpointFactory,
	templates *TemplateCache,
	sleeper Sleeper,
) *CrawlCommand {
	return &CrawlCommand{
		providerRegistry:  providerRegistry,
		checkpointFactory: checkpointFactory,
		templates:         templates,
		sleeper:           sleeper,
	}
}

// Execute loads the checkpoint and crawls from its page. It returns when
// MaxPages pages completed, when ctx ends, or when the checkpoint cannot be saved.
func (it *CrawlCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CrawlOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	hosting, err := it.providerRegistry.Get(settings.Provider, settings)
	if err != nil {
		return err
	}

	store := it.checkpointFactory(settings.Checkpoint)
	checkpoint, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	rewriter := NewTreeRewriter(hosting, it.templates, settings.Target)
	run := &crawlRun{
		hosting:    hosting,
		store:      store,
		remediate:  NewRemediateCommand(hosting, rewriter, settings),
		sleeper:    it.sleeper,
		settings:   settings,
		opts:       opts,
		checkpoint: checkpoint,
	}
	return run.loop(ctx)
}

// crawlRun owns the state of one crawl: the checkpoint is loaded once and
// every mutation of it is saved before the next remote call.
type crawlRun struct {
	hosting    repositories.HostingRepository
	store      repositories.CheckpointRepository
	remediate  Remediate
	sleeper    Sleeper
	settings   *entities.Settings
	opts       CrawlOptions
	checkpoint *entities.Checkpoint
}

func (r *crawlRun) loop(ctx context.Context) error {
	logger.Infof(
		"Starting crawl at page %d (%d repositories with %s, %d without)",
		r.checkpoint.Page, r.checkpoint.Contain.Len(), r.settings.Target.Directory, r.checkpoint.DontContain.Len(),
	)

	completed := 0
	for r.opts.MaxPages == 0 || completed < r.opts.MaxPages {
		if err := ctx.Err(); err != nil {
			return err
		}

		if pageErr := r.processPage(ctx); pageErr != nil {
			if errors.Is(pageErr, ErrCheckpointPersist) || ctx.Err() != nil {
				return pageErr
			}
			logger.Errorf("Page %d failed, restarting it after cooldown: %v", r.checkpoint.Page, pageErr)
			if err := r.persist(); err != nil {
				return err
			}
			if err := r.sleeper.Sleep(ctx, r.settings.Cooldown.Error); err != nil {
				return err
			}
			continue
		}

		if err := r.sleeper.Sleep(ctx, r.settings.Cooldown.Page); err != nil {
			return err
		}
		r.checkpoint.AdvancePage()
		if err := r.persist(); err != nil {
			return err
		}
		completed++
	}

	logger.Infof("Crawl finished after %d pages, next page is %d", completed, r.checkpoint.Page)
	return nil
}

func (r *crawlRun) processPage(ctx context.Context) error {
	page := r.checkpoint.Page
	logger.Infof("Searching page %d", page)

	result, err := r.hosting.SearchCode(ctx, r.settings.Search.Query, page)
	if err != nil {
		return fmt.Errorf("failed to search page %d: %w", page, err)
	}
	logger.Infof("Found %d results in total, %d on page %d", result.Total, len(result.Items), page)

	for _, item := range result.Items {
		if err = ctx.Err(); err != nil {
			return err
		}
		if r.checkpoint.Decided(item.FullName()) {
			logger.Debugf("Skipping %s, already processed", item.FullName())
			continue
		}
		processed, candidateErr := r.processCandidate(ctx, item)
		if candidateErr != nil {
			return candidateErr
		}
		if !processed {
			continue
		}
		if err = r.sleeper.Sleep(ctx, r.settings.Cooldown.Item); err != nil {
			return err
		}
	}
	return nil
}

// processCandidate classifies item under its canonical name. It reports false
// when that name was already decided, in which case nothing was fetched beyond
// the repository metadata.
func (r *crawlRun) processCandidate(ctx context.Context, item entities.RepositoryRef) (bool, error) {
	repo, err := r.hosting.GetRepository(ctx, item.Owner, item.Name)
	if err != nil {
		return false, fmt.Errorf("failed to get repository %s: %w", item.FullName(), err)
	}
	fullName := repo.FullName()
	if r.checkpoint.Decided(fullName) {
		logger.Debugf("Skipping %s (found as %s), already processed", fullName, item.FullName())
		return false, nil
	}
	logger.Infof("Inspecting %s (default branch %s)", fullName, repo.DefaultBranch)

	listing, err := r.hosting.ListTopLevel(ctx, repo.Owner, repo.Name)
	if err != nil {
		return false, fmt.Errorf("failed to list %s: %w", fullName, err)
	}

	if !ContainsTarget(listing, r.settings.Target.Directory) {
		r.checkpoint.RecordDoesNotContain(fullName)
		return true, r.persist()
	}

	logger.Infof("%s contains %s (%d KB)", fullName, r.settings.Target.Directory, repo.Size)
	r.checkpoint.RecordContains(fullName)
	if err = r.persist(); err != nil {
		return true, err
	}

	if r.opts.DryRun {
		logger.Infof("[dry-run] Would remediate %s", fullName)
		return true, nil
	}
	r.remediateWithRetry(ctx, Candidate{Repository: *repo, Listing: listing})
	return true, nil
}

// remediateWithRetry runs the pipeline and retries it once; a second failure
// is logged and dropped, the repository stays recorded.
func (r *crawlRun) remediateWithRetry(ctx context.Context, candidate Candidate) {
	fullName := candidate.Repository.FullName()
	for attempt := 1; attempt <= remediationAttempts; attempt++ {
		result, err := r.remediate.Execute(ctx, candidate)
		if err == nil {
			if !result.Skipped {
				logger.Infof("Remediated %s on %s:%s (.gitignore: %s)",
					fullName, result.ForkOwner, result.Branch, result.Patch)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		logger.Warnf("Remediation of %s failed (attempt %d/%d): %v", fullName, attempt, remediationAttempts, err)
	}
	logger.Errorf("Giving up on remediating %s", fullName)
}

func (r *crawlRun) persist() error {
	if r.opts.DryRun {
		return nil
	}
	if err := r.store.Save(r.checkpoint); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointPersist, err)
	}
	return nil
}
