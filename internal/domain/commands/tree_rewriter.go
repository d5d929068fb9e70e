package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/internal/domain/repositories"
)

const ignoreFileName = ".gitignore"

// ErrBlobHashMismatch is returned when the host stores an uploaded blob under
// a different object ID than its content hashes to.
var ErrBlobHashMismatch = errors.New("uploaded blob does not match its content hash")

// TreeRewriter builds the tree of the remediation commit: the repository root
// without the target directory, plus a patched or freshly created .gitignore.
type TreeRewriter struct {
	hosting        repositories.HostingRepository
	templates      *TemplateCache
	target         string
	ignoreTemplate string
}

// NewTreeRewriter creates a TreeRewriter for the given target settings.
func NewTreeRewriter(
	hosting repositories.HostingRepository,
	templates *TemplateCache,
	target entities.TargetSettings,
) *TreeRewriter {
	return &TreeRewriter{
		hosting:        hosting,
		templates:      templates,
		target:         target.Directory,
		ignoreTemplate: target.IgnoreTemplate,
	}
}

// Rewrite turns the top-level listing of owner/name into the entries of the new tree.
// Objects referenced by the listing are not re-uploaded; only a new .gitignore
// template becomes a new blob.
func (it *TreeRewriter) Rewrite(
	ctx context.Context,
	owner, name string,
	listing []entities.ContentEntry,
) (*entities.TreeRewrite, error) {
	entries, err := BuildTreeEntries(listing, it.target)
	if err != nil {
		return nil, err
	}

	if idx := indexOfPath(entries, ignoreFileName); idx >= 0 {
		if !isPatchable(entries[idx]) {
			logger.Warnf("%s in %s/%s is not a regular file (mode %s), leaving it untouched",
				ignoreFileName, owner, name, entries[idx].ModeString())
			return &entities.TreeRewrite{Entries: entries, Patch: entities.IgnorePatchNone}, nil
		}
		raw, blobErr := it.hosting.GetBlob(ctx, owner, name, entries[idx].SHA)
		if blobErr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ignoreFileName, blobErr)
		}
		patched, modified := PatchIgnoreFile(string(raw), it.target)
		if !modified {
			return &entities.TreeRewrite{Entries: entries, Patch: entities.IgnorePatchNone}, nil
		}
		entries[idx] = entries[idx].WithContent(patched)
		return &entities.TreeRewrite{Entries: entries, Patch: entities.IgnorePatchAppend}, nil
	}

	template, err := it.templates.Get(ctx, it.hosting, it.ignoreTemplate)
	if err != nil {
		return nil, err
	}
	sha, err := it.hosting.CreateBlob(ctx, owner, name, template)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", ignoreFileName, err)
	}
	if local := plumbing.ComputeHash(plumbing.BlobObject, []byte(template)); local.String() != sha {
		return nil, fmt.Errorf("%s in %s/%s: host returned %s, expected %s: %w",
			ignoreFileName, owner, name, sha, local, ErrBlobHashMismatch)
	}

	ignoreEntry, err := entities.NewAddressedEntry(ignoreFileName, filemode.Regular, sha)
	if err != nil {
		return nil, err
	}
	entries = append([]entities.TreeEntry{ignoreEntry}, entries...)
	return &entities.TreeRewrite{Entries: entries, Patch: entities.IgnorePatchTemplate}, nil
}

// BuildTreeEntries maps every top-level item except target to a
// content-addressed tree entry, keeping the listing order.
func BuildTreeEntries(listing []entities.ContentEntry, target string) ([]entities.TreeEntry, error) {
	entries := make([]entities.TreeEntry, 0, len(listing))
	for _, item := range listing {
		if item.Name == target {
			continue
		}
		mode, err := entities.ModeForContentType(item.Type)
		if err != nil {
			return nil, fmt.Errorf("cannot map %q: %w", item.Path, err)
		}
		entry, err := entities.NewAddressedEntry(item.Path, mode, item.SHA)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PatchIgnoreFile appends an exclusion line for target unless content already
// mentions it. It reports whether content changed.
func PatchIgnoreFile(content, target string) (string, bool) {
	if strings.Contains(content, target) {
		return content, false
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + target + "/\n", true
}

func indexOfPath(entries []entities.TreeEntry, path string) int {
	for i, entry := range entries {
		if entry.Path == path {
			return i
		}
	}
	return -1
}

// isPatchable reports whether entry is a plain file whose content can be rewritten.
func isPatchable(entry entities.TreeEntry) bool {
	return entry.Mode == filemode.Regular || entry.Mode == filemode.Executable
}
