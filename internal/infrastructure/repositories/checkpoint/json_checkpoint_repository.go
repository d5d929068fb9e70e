package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

// JSONCheckpointRepository stores the checkpoint as a single JSON document.
type JSONCheckpointRepository struct {
	path string
}

// NewJSONCheckpointRepository creates a checkpoint repository backed by the file at path.
func NewJSONCheckpointRepository(path string) repositories.CheckpointRepository {
	return &JSONCheckpointRepository{path: path}
}

// Load reads the checkpoint file, returning a fresh checkpoint when it does not exist.
func (r *JSONCheckpointRepository) Load() (*entities.Checkpoint, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("No checkpoint at %q, starting from page 1", r.path)
		return entities.NewCheckpoint(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %q: %w", r.path, err)
	}

	checkpoint := entities.NewCheckpoint()
	if unmarshalErr := json.Unmarshal(data, checkpoint); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %q: %w", r.path, unmarshalErr)
	}
	checkpoint.Normalize()
	return checkpoint, nil
}

// Save writes the checkpoint to a temporary file next to the target and
// renames it into place, so the previous checkpoint survives a failed write.
func (r *JSONCheckpointRepository) Save(checkpoint *entities.Checkpoint) error {
	data, err := json.Marshal(checkpoint)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if writeErr := writeAndSync(tmp, data); writeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", writeErr)
	}
	if renameErr := os.Rename(tmpName, r.path); renameErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint %q: %w", r.path, renameErr)
	}
	return nil
}

func writeAndSync(file *os.File, data []byte) error {
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
