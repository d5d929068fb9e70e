package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/modsweep/internal/domain/repositories"
	"github.com/rios0rios0/modsweep/internal/infrastructure/repositories/checkpoint"
	ghRepo "github.com/rios0rios0/modsweep/internal/infrastructure/repositories/github"
)

// CheckpointFactory opens the checkpoint stored at path.
type CheckpointFactory func(path string) domainRepos.CheckpointRepository

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all hosting provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() CheckpointFactory {
		return checkpoint.NewJSONCheckpointRepository
	}); err != nil {
		return err
	}

	return nil
}
