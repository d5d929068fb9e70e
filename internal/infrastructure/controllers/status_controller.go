package controllers

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
	"github.com/rios0rios0/modsweep/internal/domain/entities"
)

// StatusController prints a summary of the checkpoint.
type StatusController struct {
	command commands.Status
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.Status) *StatusController {
	return &StatusController{command: command}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Show crawl progress stored in the checkpoint",
		Long: `Print the next search page and how many repositories were classified,
listing the ones that held node_modules. Reads the checkpoint only.`,
	}
}

// Execute prints the checkpoint summary to the command's output.
func (it *StatusController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}

	report, err := it.command.Execute(settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(out, "Checkpoint %s\n", report.Path)
	_, _ = color.New(color.FgCyan).Fprintf(out, "  next page:       %d\n", report.Page)
	_, _ = color.New(color.FgYellow).Fprintf(out, "  with target:     %d\n", len(report.Contain))
	_, _ = color.New(color.FgGreen).Fprintf(out, "  without target:  %d\n", report.DontContain)
	for _, name := range report.Contain {
		_, _ = color.New(color.FgYellow).Fprintf(out, "    - %s\n", name)
	}
	return nil
}
