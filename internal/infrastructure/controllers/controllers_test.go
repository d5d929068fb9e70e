//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
	"github.com/rios0rios0/modsweep/internal/infrastructure/controllers"
	"github.com/rios0rios0/modsweep/test/domain/commanddoubles"
)

func newCobraCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("checkpoint", "", "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	require.NoError(t, cmd.Flags().Parse(args))

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modsweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStatusControllerExecute(t *testing.T) {
	color.NoColor = true

	t.Run("should print the checkpoint summary", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubStatusCommand{Report: &commands.StatusReport{
			Path:        "state.json",
			Page:        5,
			Contain:     []string{"acme/app"},
			DontContain: 9,
		}}
		controller := controllers.NewStatusController(stub)
		config := writeConfig(t, "token: inline-token\n")
		cmd, out := newCobraCommand(t, "--config", config, "--checkpoint", "state.json")

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "state.json", stub.LastSettings.Checkpoint)
		assert.Equal(t,
			"Checkpoint state.json\n"+
				"  next page:       5\n"+
				"  with target:     1\n"+
				"  without target:  9\n"+
				"    - acme/app\n",
			out.String())
	})

	t.Run("should propagate command failures", func(t *testing.T) {
		// given
		stub := &commanddoubles.StubStatusCommand{ExecuteErr: errors.New("corrupt checkpoint")}
		controller := controllers.NewStatusController(stub)
		config := writeConfig(t, "token: inline-token\n")
		cmd, out := newCobraCommand(t, "--config", config)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Empty(t, out.String())
	})
}

func TestCrawlControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should pass flags through to the crawl", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{}
		controller := controllers.NewCrawlController(stub)
		config := writeConfig(t, "token: inline-token\n")
		cmd, _ := newCobraCommand(t)
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Parse([]string{
			"--config", config, "--checkpoint", "other.json", "--max-pages", "3", "--dry-run", "-v",
		}))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "inline-token", stub.LastSettings.Token)
		assert.Equal(t, "other.json", stub.LastSettings.Checkpoint)
		assert.Equal(t, commands.CrawlOptions{MaxPages: 3, DryRun: true, Verbose: true}, stub.LastOpts)
	})

	t.Run("should treat an interrupted crawl as a clean stop", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{ExecuteErr: context.Canceled}
		controller := controllers.NewCrawlController(stub)
		config := writeConfig(t, "token: inline-token\n")
		cmd, _ := newCobraCommand(t, "--config", config)
		controller.AddFlags(cmd)

		// when
		err := controller.Execute(cmd, nil)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject invalid settings before crawling", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{}
		controller := controllers.NewCrawlController(stub)
		config := writeConfig(t, "token: inline-token\ntarget:\n  directory: a/b\n")
		cmd, _ := newCobraCommand(t, "--config", config)
		controller.AddFlags(cmd)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should return crawl failures", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCrawlCommand{ExecuteErr: commands.ErrCheckpointPersist}
		controller := controllers.NewCrawlController(stub)
		config := writeConfig(t, "token: inline-token\n")
		cmd, _ := newCobraCommand(t, "--config", config)
		controller.AddFlags(cmd)

		// when
		err := controller.Execute(cmd, nil)

		// then
		assert.ErrorIs(t, err, commands.ErrCheckpointPersist)
	})
}
