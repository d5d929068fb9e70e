//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
	"github.com/rios0rios0/modsweep/internal/domain/entities"
	"github.com/rios0rios0/modsweep/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/modsweep/test/infrastructure/repositorydoubles"
)

func entryPaths(entries []entities.TreeEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	return paths
}

func TestBuildTreeEntries(t *testing.T) {
	t.Parallel()

	t.Run("should drop the target and map every other item", func(t *testing.T) {
		t.Parallel()

		// given
		listing := entitybuilders.NewListingBuilder().
			WithDir("src").
			WithDir("node_modules").
			WithEntry("run.sh", entities.ContentTypeExecutable, "sha-run").
			WithEntry("latest", entities.ContentTypeSymlink, "sha-link").
			WithEntry("vendor-lib", entities.ContentTypeSubmodule, "sha-sub").
			WithFile("package.json").
			BuildListing()

		// when
		entries, err := commands.BuildTreeEntries(listing, "node_modules")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "run.sh", "latest", "vendor-lib", "package.json"}, entryPaths(entries))
		assert.Equal(t, "040000", entries[0].ModeString())
		assert.Equal(t, plumbing.TreeObject, entries[0].Type)
		assert.Equal(t, "100755", entries[1].ModeString())
		assert.Equal(t, "120000", entries[2].ModeString())
		assert.Equal(t, plumbing.CommitObject, entries[3].Type)
		assert.Equal(t, "100644", entries[4].ModeString())
		assert.Equal(t, "sha-package.json", entries[4].SHA)
	})

	t.Run("should fail on an unknown listing type", func(t *testing.T) {
		t.Parallel()

		// given
		listing := entitybuilders.NewListingBuilder().
			WithEntry("weird", entities.ContentType("socket"), "sha-weird").
			BuildListing()

		// when
		_, err := commands.BuildTreeEntries(listing, "node_modules")

		// then
		assert.Error(t, err)
	})
}

func TestPatchIgnoreFile(t *testing.T) {
	t.Parallel()

	t.Run("should append the exclusion on its own line", func(t *testing.T) {
		t.Parallel()

		// given
		content := "dist\n.env"

		// when
		patched, modified := commands.PatchIgnoreFile(content, "node_modules")

		// then
		assert.True(t, modified)
		assert.Equal(t, "dist\n.env\nnode_modules/\n", patched)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		t.Parallel()

		// given
		once, _ := commands.PatchIgnoreFile("dist\n", "node_modules")

		// when
		twice, modified := commands.PatchIgnoreFile(once, "node_modules")

		// then
		assert.False(t, modified)
		assert.Equal(t, once, twice)
	})

	t.Run("should leave content mentioning the target untouched", func(t *testing.T) {
		t.Parallel()

		// given
		content := "/node_modules\n"

		// when
		patched, modified := commands.PatchIgnoreFile(content, "node_modules")

		// then
		assert.False(t, modified)
		assert.Equal(t, content, patched)
	})

	t.Run("should patch an empty file", func(t *testing.T) {
		t.Parallel()

		// given / when
		patched, modified := commands.PatchIgnoreFile("", "node_modules")

		// then
		assert.True(t, modified)
		assert.Equal(t, "node_modules/\n", patched)
	})
}

func TestTreeRewriterRewrite(t *testing.T) {
	t.Parallel()

	target := entities.TargetSettings{Directory: "node_modules", IgnoreTemplate: "Node"}

	t.Run("should create a .gitignore from the template when none exists", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{IgnoreTemplate: "# Node\nnode_modules/\n"}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().
			WithDir("src").WithDir("node_modules").WithFile("package.json").
			BuildListing()

		// when
		rewrite, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.IgnorePatchTemplate, rewrite.Patch)
		assert.Equal(t, []string{".gitignore", "src", "package.json"}, entryPaths(rewrite.Entries))
		expected := plumbing.ComputeHash(plumbing.BlobObject, []byte("# Node\nnode_modules/\n"))
		assert.Equal(t, expected.String(), rewrite.Entries[0].SHA)
		assert.Equal(t, []string{"# Node\nnode_modules/\n"}, spy.CreatedBlobs)
		assert.Equal(t, []string{"Node"}, spy.TemplateRequests)
	})

	t.Run("should carry an appended .gitignore inline", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{Blobs: map[string]string{"sha-.gitignore": "dist\n"}}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().
			WithFile(".gitignore").WithDir("node_modules").WithFile("index.js").
			BuildListing()

		// when
		rewrite, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.IgnorePatchAppend, rewrite.Patch)
		assert.Equal(t, []string{".gitignore", "index.js"}, entryPaths(rewrite.Entries))
		assert.True(t, rewrite.Entries[0].Inline)
		assert.Empty(t, rewrite.Entries[0].SHA)
		assert.Equal(t, "dist\nnode_modules/\n", rewrite.Entries[0].Content)
		assert.Empty(t, spy.CreatedBlobs)
		assert.Empty(t, spy.TemplateRequests)
	})

	t.Run("should keep an existing .gitignore that already excludes the target", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{Blobs: map[string]string{"sha-.gitignore": "node_modules/\n"}}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().
			WithFile(".gitignore").WithDir("node_modules").
			BuildListing()

		// when
		rewrite, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.IgnorePatchNone, rewrite.Patch)
		require.Len(t, rewrite.Entries, 1)
		assert.Equal(t, "sha-.gitignore", rewrite.Entries[0].SHA)
		assert.False(t, rewrite.Entries[0].Inline)
	})

	t.Run("should fail when the host stores the template under another hash", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{
			IgnoreTemplate:  "node_modules/\n",
			BlobSHAOverride: "0000000000000000000000000000000000000000",
		}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().WithDir("node_modules").WithFile("a.js").BuildListing()

		// when
		_, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.ErrorIs(t, err, commands.ErrBlobHashMismatch)
		assert.Len(t, spy.CreatedBlobs, 1)
	})

	t.Run("should leave a .gitignore that is not a regular file untouched", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{IgnoreTemplate: "node_modules/\n"}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().
			WithDir(".gitignore").
			WithEntry("vendor", entities.ContentTypeSubmodule, "sha-vendor").
			WithDir("node_modules").
			BuildListing()

		// when
		rewrite, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.IgnorePatchNone, rewrite.Patch)
		assert.Equal(t, []string{".gitignore", "vendor"}, entryPaths(rewrite.Entries))
		assert.Equal(t, "sha-.gitignore", rewrite.Entries[0].SHA)
		assert.NotContains(t, spy.Calls, "GetBlob")
		assert.Empty(t, spy.CreatedBlobs)
		assert.Empty(t, spy.TemplateRequests)
	})

	t.Run("should fail when the template cannot be fetched", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyHostingRepository{IgnoreTemplateErr: errors.New("not found")}
		rewriter := commands.NewTreeRewriter(spy, commands.NewTemplateCache(), target)
		listing := entitybuilders.NewListingBuilder().WithDir("node_modules").BuildListing()

		// when
		_, err := rewriter.Rewrite(context.Background(), "sweeper", "app", listing)

		// then
		require.Error(t, err)
		assert.Empty(t, spy.CreatedBlobs)
	})
}
