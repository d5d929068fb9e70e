package entities

import (
	"encoding/json"
)

const firstPage = 1

// RepositorySet is an insertion-ordered set of repository full names.
// The zero value is ready to use.
type RepositorySet struct {
	names []string
	index map[string]struct{}
}

// NewRepositorySet builds a set from the given names, dropping duplicates.
func NewRepositorySet(names ...string) RepositorySet {
	var set RepositorySet
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts name and reports whether it was not already present.
func (s *RepositorySet) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Remove deletes name and reports whether it was present.
func (s *RepositorySet) Remove(name string) bool {
	if _, ok := s.index[name]; !ok {
		return false
	}
	delete(s.index, name)
	for i, existing := range s.names {
		if existing == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether name is in the set.
func (s *RepositorySet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of names in the set.
func (s *RepositorySet) Len() int {
	return len(s.names)
}

// Names returns a copy of the names in insertion order.
func (s *RepositorySet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// MarshalJSON encodes the set as a JSON array, never null.
func (s RepositorySet) MarshalJSON() ([]byte, error) {
	if s.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.names)
}

// UnmarshalJSON decodes a JSON array of names, dropping duplicates.
func (s *RepositorySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewRepositorySet(names...)
	return nil
}

// Checkpoint is the persisted progress of a crawl.
//
// A repository appears in at most one of Contain and DontContain, and once it
// appears in either it is never processed again.
type Checkpoint struct {
	Contain     RepositorySet `json:"contain"`
	DontContain RepositorySet `json:"dont_contain"`
	Page        int           `json:"page"`
}

// NewCheckpoint returns an empty checkpoint positioned at the first page.
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{Page: firstPage}
}

// Decided reports whether fullName has already been classified.
func (c *Checkpoint) Decided(fullName string) bool {
	return c.Contain.Has(fullName) || c.DontContain.Has(fullName)
}

// RecordContains classifies fullName as holding the target directory.
func (c *Checkpoint) RecordContains(fullName string) {
	c.DontContain.Remove(fullName)
	c.Contain.Add(fullName)
}

// RecordDoesNotContain classifies fullName as free of the target directory.
func (c *Checkpoint) RecordDoesNotContain(fullName string) {
	c.Contain.Remove(fullName)
	c.DontContain.Add(fullName)
}

// AdvancePage moves the cursor to the next search page.
func (c *Checkpoint) AdvancePage() {
	c.Page++
}

// Normalize repairs checkpoints that were edited by hand: the page cursor is
// at least 1 and a name present in both sets is kept only in Contain.
func (c *Checkpoint) Normalize() {
	if c.Page < firstPage {
		c.Page = firstPage
	}
	for _, name := range c.Contain.Names() {
		c.DontContain.Remove(name)
	}
}
