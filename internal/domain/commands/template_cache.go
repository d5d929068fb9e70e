package commands

import (
	"context"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

// TemplateCache keeps ignore-file templates for the lifetime of the process.
// The template is identical for every repository, so each ecosystem is
// fetched at most once and concurrent callers share a single fetch.
type TemplateCache struct {
	group     singleflight.Group
	mu        sync.RWMutex
	templates map[string]string
}

// NewTemplateCache creates an empty TemplateCache.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{templates: make(map[string]string)}
}

// Get returns the cached template for ecosystem, fetching it through hosting on first use.
func (c *TemplateCache) Get(
	ctx context.Context,
	hosting repositories.HostingRepository,
	ecosystem string,
) (string, error) {
	c.mu.RLock()
	cached, ok := c.templates[ecosystem]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	value, err, _ := c.group.Do(ecosystem, func() (interface{}, error) {
		template, fetchErr := hosting.GetIgnoreTemplate(ctx, ecosystem)
		if fetchErr != nil {
			return "", fetchErr
		}
		c.mu.Lock()
		c.templates[ecosystem] = template
		c.mu.Unlock()
		logger.Debugf("Cached %q ignore template (%d bytes)", ecosystem, len(template))
		return template, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch %q ignore template: %w", ecosystem, err)
	}
	return value.(string), nil
}
