package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the current configuration",
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Writer

			_, _ = fmt.Fprintln(w, "Current configuration")
			_, _ = fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━\n")

			if cfg.Hosting.Owner == "" || cfg.Hosting.Repo == "" {
				_, _ = fmt.Fprintln(w, "Repository: not configured (run: shipmate config init)")
			} else {
				_, _ = fmt.Fprintf(w, "Repository: %s/%s\n", cfg.Hosting.Owner, cfg.Hosting.Repo)
			}
			_, _ = fmt.Fprintf(w, "Base branch: %s\n", cfg.Hosting.BaseBranch)
			_, _ = fmt.Fprintf(w, "Hosting token env: %s\n", cfg.Hosting.TokenEnv)

			if len(cfg.Hosting.BranchTokens) > 0 {
				_, _ = fmt.Fprintln(w, "Branch token overrides:")
				for branch, envVar := range cfg.Hosting.BranchTokens {
					_, _ = fmt.Fprintf(w, "- %s: %s\n", branch, envVar)
				}
			}

			_, _ = fmt.Fprintf(w, "AI model: %s\n", cfg.AI.Model)
			_, _ = fmt.Fprintf(w, "AI max output tokens: %d\n", cfg.AI.MaxOutputTokens)
			if cfg.Credentials.APIKey == "" {
				_, _ = fmt.Fprintf(w, "AI API key: not set (export %s)\n", cfg.AI.APIKeyEnv)
			} else {
				_, _ = fmt.Fprintln(w, "AI API key: set")
			}

			_, _ = fmt.Fprintf(w, "Deployment marker env: %s\n", cfg.Deployment.MarkerEnv)
			_, _ = fmt.Fprintf(w, "Deployment branch env: %s\n", cfg.Deployment.BranchEnv)

			return nil
		},
	}
}
