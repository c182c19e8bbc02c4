package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/shipmate/internal/ai/gemini"
	configcmd "github.com/thomas-vilte/shipmate/internal/cli/command/config"
	"github.com/thomas-vilte/shipmate/internal/cli/command/issue"
	"github.com/thomas-vilte/shipmate/internal/cli/command/publish"
	"github.com/thomas-vilte/shipmate/internal/cli/registry"
	cfg "github.com/thomas-vilte/shipmate/internal/config"
	"github.com/thomas-vilte/shipmate/internal/git"
	"github.com/thomas-vilte/shipmate/internal/logger"
	"github.com/thomas-vilte/shipmate/internal/ports"
	"github.com/thomas-vilte/shipmate/internal/services"
	"github.com/thomas-vilte/shipmate/internal/ui"
	"github.com/thomas-vilte/shipmate/internal/vcs/github"
	"github.com/thomas-vilte/shipmate/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	gitService := git.NewGitService(cfgApp)

	publishProvider := func(ctx context.Context) (publish.WorkflowService, error) {
		return newPublishService(ctx, cfgApp, gitService), nil
	}

	issueProvider := func(ctx context.Context) (issue.IssuePublisher, error) {
		return newPublishService(ctx, cfgApp, gitService), nil
	}

	registerCommand := registry.NewRegistry(cfgApp)

	if err := registerCommand.Register("publish", publish.NewPublishCommandFactory(publishProvider)); err != nil {
		log.Fatalf("Error registering the 'publish' command: %v", err)
	}

	if err := registerCommand.Register("issue", issue.NewIssueCommandFactory(issueProvider)); err != nil {
		log.Fatalf("Error registering the 'issue' command: %v", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		log.Fatalf("Error registering the 'config' command: %v", err)
	}

	return &cli.Command{
		Name:        "shipmate",
		Usage:       "Sync your branch with the base branch and publish AI-described pull requests",
		Version:     version.Version,
		Description: "Rebases the current branch onto the base branch, generates a PR title and body from the diff, and opens the pull request or an issue on the hosting platform.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable info-level logging",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug-level logging",
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			logger.Initialize(command.Bool("debug"), command.Bool("verbose"))
			return ctx, nil
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}

// newPublishService wires the workflow. The AI generator is optional here:
// when it cannot be built (missing key), sync-only runs still work and the
// publish path reports the configuration error itself.
func newPublishService(ctx context.Context, cfgApp *cfg.Config, gitService ports.GitService) *services.PublishService {
	generator, err := gemini.NewMessageGenerator(ctx, cfgApp)
	opts := []services.PublishOption{
		services.WithGitService(gitService),
		services.WithPublishConfig(cfgApp),
		services.WithHostingClientFactory(func(token string) ports.HostingClient {
			return github.NewGitHubClient(token)
		}),
	}
	if err != nil {
		ui.PrintWarning("AI is not configured, PR generation is unavailable: " + err.Error())
	} else {
		opts = append(opts, services.WithMessageGenerator(generator))
	}

	return services.NewPublishService(opts...)
}
