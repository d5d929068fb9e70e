package entities

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies a hosted repository together with the metadata the
// crawl needs to remediate it.
type RepositoryRef struct {
	Owner         string
	Name          string
	DefaultBranch string
	Size          int // kilobytes, as reported by the host
}

// FullName returns the "owner/name" form used as the checkpoint key.
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseFullName splits an "owner/name" string into a RepositoryRef.
func ParseFullName(fullName string) (RepositoryRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepositoryRef{}, fmt.Errorf("invalid repository full name %q, expected owner/name", fullName)
	}
	return RepositoryRef{Owner: owner, Name: name}, nil
}

// ContentType is the kind of an item in a repository directory listing.
type ContentType string

const (
	ContentTypeDir        ContentType = "dir"
	ContentTypeFile       ContentType = "file"
	ContentTypeExecutable ContentType = "executable"
	ContentTypeSymlink    ContentType = "symlink"
	ContentTypeSubmodule  ContentType = "submodule"
)

// ContentEntry is one item of a repository's top-level listing.
type ContentEntry struct {
	Name string
	Path string
	Type ContentType
	SHA  string
}

// SearchPage is one page of code-search results reduced to the repositories
// that own the matching files, in the order the host returned them.
type SearchPage struct {
	Total int
	Items []RepositoryRef
}
