package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
)

// settingsFromFlags loads the settings named by --config (or an auto-detected
// file) and applies the --checkpoint override.
func settingsFromFlags(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	checkpointPath, _ := cmd.Flags().GetString("checkpoint")

	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}

	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if checkpointPath != "" {
		settings.Checkpoint = checkpointPath
	}
	return settings, nil
}
