//go:build unit

package commands_test

import (
	"github.com/rios0rios0/modsweep/internal/domain/entities"
)

func newTestSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Token = "test-token"
	return settings
}
