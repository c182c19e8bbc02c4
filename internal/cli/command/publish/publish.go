package publish

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/thomas-vilte/shipmate/internal/models"
	"github.com/thomas-vilte/shipmate/internal/ui"
	"github.com/urfave/cli/v3"
)

// WorkflowService is the slice of the publish service this command needs.
type WorkflowService interface {
	PublishPullRequest(ctx context.Context, progress func(models.ProgressEvent)) (models.CreatedResource, error)
	SyncWithMain(ctx context.Context, progress func(models.ProgressEvent)) error
	BranchState(ctx context.Context) (models.BranchState, error)
}

type PublishCommandFactory struct {
	serviceProvider func(ctx context.Context) (WorkflowService, error)
}

func NewPublishCommandFactory(provider func(ctx context.Context) (WorkflowService, error)) *PublishCommandFactory {
	return &PublishCommandFactory{serviceProvider: provider}
}

// NewPublishCommandFactoryFromService wraps an already built service,
// mainly for tests.
func NewPublishCommandFactoryFromService(service WorkflowService) *PublishCommandFactory {
	return &PublishCommandFactory{
		serviceProvider: func(ctx context.Context) (WorkflowService, error) {
			return service, nil
		},
	}
}

func (f *PublishCommandFactory) CreateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "publish",
		Aliases:     []string{"p"},
		Usage:       "Sync the current branch with the base branch and open a pull request",
		Description: "Pushes the branch, rebases it onto the base branch, generates a PR title and body from the diff, and opens the pull request.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "sync-only",
				Aliases: []string{"s"},
				Usage:   "Only sync the branch with the base branch, do not open a pull request",
			},
		},
		Action: f.createAction(cfg),
	}
}

func (f *PublishCommandFactory) createAction(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		service, err := f.serviceProvider(ctx)
		if err != nil {
			ui.HandleAppError(err)
			return err
		}

		state, err := service.BranchState(ctx)
		if err != nil {
			ui.HandleAppError(err)
			return err
		}

		ui.PrintSectionBanner("Publishing " + state.CurrentBranch)
		if state.HasUncommittedChanges {
			ui.PrintWarning("Working tree is dirty, pending changes will be committed with a placeholder message")
		}

		spinner := ui.NewSmartSpinner("Starting")
		spinner.Start()
		progress := func(event models.ProgressEvent) {
			spinner.UpdateMessage(progressMessage(event, cfg.Hosting.BaseBranch))
		}

		if command.Bool("sync-only") {
			if err := service.SyncWithMain(ctx, progress); err != nil {
				spinner.Stop()
				ui.HandleAppError(err)
				return err
			}
			spinner.Success(fmt.Sprintf("Branch %s synced with %s", state.CurrentBranch, cfg.Hosting.BaseBranch))
			return nil
		}

		created, err := service.PublishPullRequest(ctx, progress)
		if err != nil {
			spinner.Stop()
			ui.HandleAppError(err)
			return err
		}

		spinner.Success("Pull request opened")
		ui.PrintCreatedLink("PR", created.Number, created.URL)
		return nil
	}
}

func progressMessage(event models.ProgressEvent, base string) string {
	switch event.Type {
	case models.ProgressCommitting:
		return "Committing pending changes"
	case models.ProgressPushing:
		return "Pushing branch"
	case models.ProgressFetching:
		return "Fetching " + base
	case models.ProgressRebasing:
		return "Rebasing onto " + base
	case models.ProgressForcePush:
		return "Force-pushing rebased branch"
	case models.ProgressGenerating:
		return "Generating PR message"
	case models.ProgressPublishing:
		return "Opening pull request"
	default:
		return string(event.Type)
	}
}
