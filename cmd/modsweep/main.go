package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modsweep/internal"
	"github.com/rios0rios0/modsweep/internal/infrastructure/controllers"
)

func buildRootCommand(crawlController *controllers.CrawlController) *cobra.Command {
	bind := crawlController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "modsweep",
		Short: "Propose removal of committed node_modules directories on GitHub",
		Long:  bind.Long,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			return crawlController.Execute(command, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("checkpoint", "",
		"Path to the checkpoint file (default: processed.json)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output, including every GitHub API call")

	crawlController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
			SilenceUsage: true,
		}

		// Add controller-specific flags
		if cc, ok := ctrl.(*controllers.CrawlController); ok {
			cc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func crawlControllerOf(appContext *internal.AppInternal) *controllers.CrawlController {
	for _, controller := range appContext.GetControllers() {
		if cc, ok := controller.(*controllers.CrawlController); ok {
			return cc
		}
	}
	panic("crawl controller is not registered")
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Failed to load .env: %v", err)
	}
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(crawlControllerOf(appContext))
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'modsweep': %s", err)
	}
}
