package internal

import "github.com/rios0rios0/modsweep/internal/domain/entities"

// AppInternal holds every controller mounted on the CLI.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers in mount order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
