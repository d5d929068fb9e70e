package repositories

import "github.com/rios0rios0/modsweep/internal/domain/entities"

// CheckpointRepository persists crawl progress between runs.
type CheckpointRepository interface {
	// Load returns the last saved checkpoint, or a fresh one when none exists.
	Load() (*entities.Checkpoint, error)

	// Save atomically replaces the persisted checkpoint.
	Save(checkpoint *entities.Checkpoint) error
}
