package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/thomas-vilte/shipmate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Set the target repository and base branch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "owner",
				Usage:    "Repository owner or organization",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "repo",
				Usage:    "Repository name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base-branch",
				Usage: "Base branch PRs are opened against",
				Value: "main",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			cfg.Hosting.Owner = command.String("owner")
			cfg.Hosting.Repo = command.String("repo")
			cfg.Hosting.BaseBranch = command.String("base-branch")

			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("error saving configuration: %w", err)
			}

			ui.PrintSuccess(command.Writer, fmt.Sprintf("Configured %s/%s (base %s)",
				cfg.Hosting.Owner, cfg.Hosting.Repo, cfg.Hosting.BaseBranch))
			return nil
		},
	}
}
