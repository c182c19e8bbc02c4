package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return cfg
}

func TestInitCommand(t *testing.T) {
	t.Run("stores owner repo and base branch", func(t *testing.T) {
		cfg := setupConfigTest(t)

		app := &cli.Command{Commands: []*cli.Command{
			NewConfigCommandFactory().CreateCommand(cfg),
		}}
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"shipmate", "config", "init",
			"--owner", "acme", "--repo", "widget", "--base-branch", "develop"})
		require.NoError(t, err)

		reloaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, "acme", reloaded.Hosting.Owner)
		assert.Equal(t, "widget", reloaded.Hosting.Repo)
		assert.Equal(t, "develop", reloaded.Hosting.BaseBranch)
	})

	t.Run("base branch defaults to main", func(t *testing.T) {
		cfg := setupConfigTest(t)

		app := &cli.Command{Commands: []*cli.Command{
			NewConfigCommandFactory().CreateCommand(cfg),
		}}
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"shipmate", "config", "init",
			"--owner", "acme", "--repo", "widget"})
		require.NoError(t, err)
		assert.Equal(t, "main", cfg.Hosting.BaseBranch)
	})

	t.Run("owner is required", func(t *testing.T) {
		cfg := setupConfigTest(t)

		app := &cli.Command{Commands: []*cli.Command{
			NewConfigCommandFactory().CreateCommand(cfg),
		}}
		app.Writer = &bytes.Buffer{}

		err := app.Run(context.Background(), []string{"shipmate", "config", "init",
			"--repo", "widget"})
		assert.Error(t, err)
	})
}

func TestShowCommand(t *testing.T) {
	t.Run("displays the configured repository", func(t *testing.T) {
		cfg := setupConfigTest(t)
		cfg.Hosting.Owner = "acme"
		cfg.Hosting.Repo = "widget"

		var buf bytes.Buffer
		app := &cli.Command{Commands: []*cli.Command{
			NewConfigCommandFactory().CreateCommand(cfg),
		}}
		app.Writer = &buf

		err := app.Run(context.Background(), []string{"shipmate", "config", "show"})
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "acme/widget")
		assert.Contains(t, output, "Base branch: main")
		assert.Contains(t, output, "AI model: gemini-2.5-flash")
	})

	t.Run("points at config init when repository is missing", func(t *testing.T) {
		cfg := setupConfigTest(t)

		var buf bytes.Buffer
		app := &cli.Command{Commands: []*cli.Command{
			NewConfigCommandFactory().CreateCommand(cfg),
		}}
		app.Writer = &buf

		err := app.Run(context.Background(), []string{"shipmate", "config", "show"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "not configured")
	})
}
