package commands

import (
	"fmt"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	infraRepos "github.com/rios0rios0/modsweep/internal/infrastructure/repositories"
)

// Status is the interface for the status command.
type Status interface {
	Execute(settings *entities.Settings) (*StatusReport, error)
}

// StatusReport summarizes a persisted checkpoint.
type StatusReport struct {
	Path        string
	Page        int
	Contain     []string
	DontContain int
}

// StatusCommand reads the checkpoint without touching the remote.
type StatusCommand struct {
	checkpointFactory infraRepos.CheckpointFactory
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(checkpointFactory infraRepos.CheckpointFactory) *StatusCommand {
	return &StatusCommand{checkpointFactory: checkpointFactory}
}

// Execute loads the checkpoint configured in settings and summarizes it.
func (it *StatusCommand) Execute(settings *entities.Settings) (*StatusReport, error) {
	checkpoint, err := it.checkpointFactory(settings.Checkpoint).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint %q: %w", settings.Checkpoint, err)
	}
	return &StatusReport{
		Path:        settings.Checkpoint,
		Page:        checkpoint.Page,
		Contain:     checkpoint.Contain.Names(),
		DontContain: checkpoint.DontContain.Len(),
	}, nil
}
