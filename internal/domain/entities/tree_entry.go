package entities

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// ErrAmbiguousTreeEntry is returned when an entry both references an object and carries content.
var ErrAmbiguousTreeEntry = errors.New("tree entry cannot reference an object and carry content")

// TreeEntry is one entry of a tree object to be created on the host.
//
// An entry is either content-addressed (SHA set) or content-carrying
// (Inline set, Content holding the bytes), never both.
type TreeEntry struct {
	Path    string
	Mode    filemode.FileMode
	Type    plumbing.ObjectType
	SHA     string
	Content string
	Inline  bool
}

// NewAddressedEntry builds a content-addressed entry, deriving the object type from the mode.
func NewAddressedEntry(path string, mode filemode.FileMode, sha string) (TreeEntry, error) {
	objectType, err := ObjectTypeForMode(mode)
	if err != nil {
		return TreeEntry{}, err
	}
	return TreeEntry{Path: path, Mode: mode, Type: objectType, SHA: sha}, nil
}

// WithContent returns a copy of the entry that carries content inline and
// drops its object reference.
func (e TreeEntry) WithContent(content string) TreeEntry {
	e.SHA = ""
	e.Content = content
	e.Inline = true
	return e
}

// ModeString renders the mode the way the git data API expects it ("040000", "100644").
func (e TreeEntry) ModeString() string {
	return fmt.Sprintf("%06o", uint32(e.Mode))
}

// Validate checks the mode/type pairing and the addressed/inline exclusivity.
func (e TreeEntry) Validate() error {
	if e.Path == "" {
		return errors.New("tree entry path is required")
	}
	expected, err := ObjectTypeForMode(e.Mode)
	if err != nil {
		return err
	}
	if expected != e.Type {
		return fmt.Errorf("tree entry %q: mode %s requires type %s, got %s", e.Path, e.ModeString(), expected, e.Type)
	}
	if e.Inline && e.SHA != "" {
		return fmt.Errorf("tree entry %q: %w", e.Path, ErrAmbiguousTreeEntry)
	}
	if !e.Inline && e.SHA == "" {
		return fmt.Errorf("tree entry %q: neither object reference nor content", e.Path)
	}
	return nil
}

// ObjectTypeForMode returns the git object type a mode is paired with.
func ObjectTypeForMode(mode filemode.FileMode) (plumbing.ObjectType, error) {
	switch mode {
	case filemode.Dir:
		return plumbing.TreeObject, nil
	case filemode.Regular, filemode.Executable, filemode.Symlink:
		return plumbing.BlobObject, nil
	case filemode.Submodule:
		return plumbing.CommitObject, nil
	default:
		return plumbing.InvalidObject, fmt.Errorf("unsupported tree entry mode %06o", uint32(mode))
	}
}

// ModeForContentType maps a directory-listing item type to a tree entry mode.
func ModeForContentType(contentType ContentType) (filemode.FileMode, error) {
	switch contentType {
	case ContentTypeDir:
		return filemode.Dir, nil
	case ContentTypeFile:
		return filemode.Regular, nil
	case ContentTypeExecutable:
		return filemode.Executable, nil
	case ContentTypeSymlink:
		return filemode.Symlink, nil
	case ContentTypeSubmodule:
		return filemode.Submodule, nil
	default:
		return filemode.Empty, fmt.Errorf("unsupported content type %q", contentType)
	}
}
