package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register shared collaborators
	if err := container.Provide(NewTemplateCache); err != nil {
		return err
	}
	if err := container.Provide(NewTimerSleeper); err != nil {
		return err
	}

	// Register command constructors
	if err := container.Provide(NewCrawlCommand); err != nil {
		return err
	}
	if err := container.Provide(NewStatusCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *TimerSleeper) Sleeper {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CrawlCommand) Crawl {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *StatusCommand) Status {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
