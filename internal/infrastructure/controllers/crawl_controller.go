package controllers

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
	"github.com/rios0rios0/modsweep/internal/domain/entities"
)

// CrawlController handles the crawl, which is also what the bare root command runs.
type CrawlController struct {
	command commands.Crawl
}

// NewCrawlController creates a new CrawlController.
func NewCrawlController(command commands.Crawl) *CrawlController {
	return &CrawlController{command: command}
}

// GetBind returns the Cobra command metadata for the crawl controller.
func (it *CrawlController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Crawl code search and open pull requests removing committed node_modules",
		Long: `Search GitHub code for repositories with a top-level node_modules directory,
fork each one, commit a tree without the directory (adding it to .gitignore)
and open a pull request back to the origin.

The crawl resumes from the checkpoint file and runs until interrupted.
Authentication uses the TOKEN (or GITHUB_TOKEN) environment variable,
which may also be set in a .env file.`,
	}
}

// Execute runs the crawl until it is interrupted or a fatal error occurs.
func (it *CrawlController) Execute(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}
	if err = settings.Validate(); err != nil {
		return err
	}

	maxPages, _ := cmd.Flags().GetInt("max-pages")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger.Infof("Using checkpoint file: %s", settings.Checkpoint)
	err = it.command.Execute(ctx, settings, commands.CrawlOptions{
		MaxPages: maxPages,
		DryRun:   dryRun,
		Verbose:  verbose,
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("Crawl interrupted, progress is saved in the checkpoint")
		return nil
	}
	return err
}

// AddFlags adds the crawl-specific flags to the given Cobra command.
func (it *CrawlController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-pages", 0, "Stop after this many search pages (0 = run until interrupted)")
	cmd.Flags().Bool("dry-run", false, "Detect and log only: no forks, pull requests or checkpoint writes")
}
