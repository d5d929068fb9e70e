//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/modsweep/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// ListingBuilder assembles a top-level directory listing. Object SHAs are
// derived from the entry name unless given explicitly.
type ListingBuilder struct {
	*testkit.BaseBuilder
	entries []entities.ContentEntry
}

// NewListingBuilder creates an empty listing builder.
func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{BaseBuilder: testkit.NewBaseBuilder()}
}

// WithDir appends a directory entry.
func (b *ListingBuilder) WithDir(name string) *ListingBuilder {
	return b.WithEntry(name, entities.ContentTypeDir, "sha-"+name)
}

// WithFile appends a regular file entry.
func (b *ListingBuilder) WithFile(name string) *ListingBuilder {
	return b.WithEntry(name, entities.ContentTypeFile, "sha-"+name)
}

// WithEntry appends an entry with an explicit type and object SHA.
func (b *ListingBuilder) WithEntry(name string, contentType entities.ContentType, sha string) *ListingBuilder {
	b.entries = append(b.entries, entities.ContentEntry{
		Name: name,
		Path: name,
		Type: contentType,
		SHA:  sha,
	})
	return b
}

// Build creates the listing (satisfies testkit.Builder interface).
func (b *ListingBuilder) Build() interface{} {
	return b.BuildListing()
}

// BuildListing creates the listing with a concrete return type.
func (b *ListingBuilder) BuildListing() []entities.ContentEntry {
	out := make([]entities.ContentEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Reset clears the builder state, allowing it to be reused.
func (b *ListingBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.entries = nil
	return b
}

// Clone creates a deep copy of the ListingBuilder.
func (b *ListingBuilder) Clone() testkit.Builder {
	return &ListingBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		entries:     b.BuildListing(),
	}
}
