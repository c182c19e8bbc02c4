package issue

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/shipmate/internal/config"
	"github.com/thomas-vilte/shipmate/internal/models"
	"github.com/thomas-vilte/shipmate/internal/ui"
	"github.com/urfave/cli/v3"
)

// IssuePublisher is the slice of the publish service this command needs.
type IssuePublisher interface {
	PublishIssue(ctx context.Context, title, body string, labels []string) (models.CreatedResource, error)
}

type IssueCommandFactory struct {
	serviceProvider func(ctx context.Context) (IssuePublisher, error)
}

func NewIssueCommandFactory(provider func(ctx context.Context) (IssuePublisher, error)) *IssueCommandFactory {
	return &IssueCommandFactory{serviceProvider: provider}
}

func (f *IssueCommandFactory) CreateCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "issue",
		Aliases:     []string{"i"},
		Usage:       "Open an issue on the configured repository",
		Description: "Creates an issue with the given title, body and labels through the hosting API.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Issue title",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   "Issue body in markdown",
			},
			&cli.StringSliceFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "Label to apply, repeatable",
			},
		},
		Action: f.createAction(cfg),
	}
}

func (f *IssueCommandFactory) createAction(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		service, err := f.serviceProvider(ctx)
		if err != nil {
			ui.HandleAppError(err)
			return err
		}

		title := command.String("title")
		body := command.String("body")
		labels := command.StringSlice("label")

		var created models.CreatedResource
		err = ui.WithSpinner(fmt.Sprintf("Opening issue on %s/%s", cfg.Hosting.Owner, cfg.Hosting.Repo), func() error {
			var publishErr error
			created, publishErr = service.PublishIssue(ctx, title, body, labels)
			return publishErr
		})
		if err != nil {
			ui.HandleAppError(err)
			return err
		}

		ui.PrintCreatedLink("Issue", created.Number, created.URL)
		return nil
	}
}
