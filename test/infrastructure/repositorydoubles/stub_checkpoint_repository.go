//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

// CheckpointSnapshot is a deep copy of a checkpoint at the time it was saved.
type CheckpointSnapshot struct {
	Contain     []string
	DontContain []string
	Page        int
}

// StubCheckpointRepository keeps the checkpoint in memory and records every save.
type StubCheckpointRepository struct {
	Initial *entities.Checkpoint
	LoadErr error
	SaveErr error

	LoadCount int
	Saved     []CheckpointSnapshot
}

var _ repositories.CheckpointRepository = (*StubCheckpointRepository)(nil)

func (s *StubCheckpointRepository) Load() (*entities.Checkpoint, error) {
	s.LoadCount++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Initial == nil {
		return entities.NewCheckpoint(), nil
	}
	return s.Initial, nil
}

func (s *StubCheckpointRepository) Save(checkpoint *entities.Checkpoint) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saved = append(s.Saved, CheckpointSnapshot{
		Contain:     checkpoint.Contain.Names(),
		DontContain: checkpoint.DontContain.Names(),
		Page:        checkpoint.Page,
	})
	return nil
}

// Last returns the most recent save, or the zero snapshot when nothing was saved.
func (s *StubCheckpointRepository) Last() CheckpointSnapshot {
	if len(s.Saved) == 0 {
		return CheckpointSnapshot{}
	}
	return s.Saved[len(s.Saved)-1]
}
