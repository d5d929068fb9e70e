package commands

import "github.com/rios0rios0/modsweep/internal/domain/entities"

// ContainsTarget reports whether the top-level listing holds an entry named
// exactly target. Nested occurrences are not considered.
func ContainsTarget(listing []entities.ContentEntry, target string) bool {
	for _, entry := range listing {
		if entry.Name == target {
			return true
		}
	}
	return false
}
