package services

import (
	"context"
	"errors"

	"github.com/thomas-vilte/shipmate/internal/config"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"github.com/thomas-vilte/shipmate/internal/logger"
	"github.com/thomas-vilte/shipmate/internal/models"
	"github.com/thomas-vilte/shipmate/internal/ports"
)

// autoCommitMessage is the placeholder used when the tree is dirty at the
// start of a publish run. It is a convenience commit, not a semantic one.
const autoCommitMessage = "chore: commit pending changes before publish"

// HostingClientFactory builds a hosting client for the token selected by
// branch identity.
type HostingClientFactory func(token string) ports.HostingClient

type PublishService struct {
	gitService     ports.GitService
	generator      ports.MessageGenerator
	hostingFactory HostingClientFactory
	config         *config.Config
}

type PublishOption func(*PublishService)

func WithGitService(git ports.GitService) PublishOption {
	return func(s *PublishService) {
		s.gitService = git
	}
}

func WithMessageGenerator(generator ports.MessageGenerator) PublishOption {
	return func(s *PublishService) {
		s.generator = generator
	}
}

func WithHostingClientFactory(factory HostingClientFactory) PublishOption {
	return func(s *PublishService) {
		s.hostingFactory = factory
	}
}

func WithPublishConfig(cfg *config.Config) PublishOption {
	return func(s *PublishService) {
		s.config = cfg
	}
}

func NewPublishService(opts ...PublishOption) *PublishService {
	s := &PublishService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublishPullRequest runs the full workflow: commit pending work, sync the
// branch with the base, summarize the diff, and open the pull request.
// There is no partial-success state; the first failure aborts the run.
func (s *PublishService) PublishPullRequest(ctx context.Context, progress func(models.ProgressEvent)) (models.CreatedResource, error) {
	log := logger.FromContext(ctx)

	if err := s.checkRepoConfigured(); err != nil {
		return models.CreatedResource{}, err
	}

	if s.generator == nil {
		log.Error("AI generator not configured")
		return models.CreatedResource{}, domainErrors.ErrAPIKeyMissing
	}

	dirty, err := s.gitService.HasPendingChanges(ctx)
	if err != nil {
		return models.CreatedResource{}, err
	}
	if dirty {
		log.Info("working tree is dirty, committing pending changes")
		emit(progress, models.ProgressEvent{Type: models.ProgressCommitting})
		if err := s.gitService.CommitAll(ctx, autoCommitMessage); err != nil {
			return models.CreatedResource{}, err
		}
		if err := s.gitService.Push(ctx, true); err != nil {
			return models.CreatedResource{}, err
		}
	}

	branch, err := s.gitService.CurrentBranch(ctx)
	if err != nil {
		return models.CreatedResource{}, err
	}

	log.Info("publishing pull request",
		"branch", branch,
		"base", s.config.Hosting.BaseBranch)

	if err := s.syncWithMain(ctx, progress); err != nil {
		return models.CreatedResource{}, err
	}

	diff, err := s.gitService.DiffAgainstMain(ctx)
	if err != nil {
		return models.CreatedResource{}, err
	}

	emit(progress, models.ProgressEvent{Type: models.ProgressGenerating, Branch: branch})
	message, err := s.generator.Summarize(ctx, diff)
	if err != nil {
		log.Error("failed to generate PR message",
			"error", err,
			"branch", branch)
		return models.CreatedResource{}, err
	}

	emit(progress, models.ProgressEvent{Type: models.ProgressPublishing, Branch: branch})
	client, err := s.hostingClientFor(branch)
	if err != nil {
		return models.CreatedResource{}, err
	}

	created, err := client.CreatePullRequest(ctx, models.PullRequestRequest{
		Owner: s.config.Hosting.Owner,
		Repo:  s.config.Hosting.Repo,
		Title: message.Title,
		Body:  message.Body,
		Head:  branch,
		Base:  s.config.Hosting.BaseBranch,
	})
	if err != nil {
		return models.CreatedResource{}, err
	}

	log.Info("pull request published",
		"branch", branch,
		"pr_number", created.Number,
		"pr_url", created.URL)

	return created, nil
}

// SyncWithMain pushes the current branch, fetches the base, rebases onto it
// and force-pushes the result. Usable standalone for the sync-only entry.
func (s *PublishService) SyncWithMain(ctx context.Context, progress func(models.ProgressEvent)) error {
	return s.syncWithMain(ctx, progress)
}

func (s *PublishService) syncWithMain(ctx context.Context, progress func(models.ProgressEvent)) error {
	log := logger.FromContext(ctx)

	emit(progress, models.ProgressEvent{Type: models.ProgressPushing})
	if err := s.gitService.Push(ctx, false); err != nil {
		// A failed plain push means the local state cannot be published;
		// nothing further is attempted.
		log.Error("initial push failed, aborting sync", "error", err)
		var appErr *domainErrors.AppError
		if errors.As(err, &appErr) && appErr.Type == domainErrors.TypeSync {
			return err
		}
		return domainErrors.ErrPushRejected.WithError(err)
	}

	emit(progress, models.ProgressEvent{Type: models.ProgressFetching})
	if err := s.gitService.Fetch(ctx); err != nil {
		return err
	}

	emit(progress, models.ProgressEvent{Type: models.ProgressRebasing})
	if err := s.gitService.RebaseOntoMain(ctx); err != nil {
		return err
	}

	emit(progress, models.ProgressEvent{Type: models.ProgressForcePush})
	if err := s.gitService.Push(ctx, true); err != nil {
		return err
	}

	log.Info("branch synced with base",
		"base", s.config.Hosting.BaseBranch)

	return nil
}

// PublishIssue opens an issue on the configured repository.
func (s *PublishService) PublishIssue(ctx context.Context, title, body string, labels []string) (models.CreatedResource, error) {
	log := logger.FromContext(ctx)

	if err := s.checkRepoConfigured(); err != nil {
		return models.CreatedResource{}, err
	}

	branch, err := s.gitService.CurrentBranch(ctx)
	if err != nil {
		return models.CreatedResource{}, err
	}

	client, err := s.hostingClientFor(branch)
	if err != nil {
		return models.CreatedResource{}, err
	}

	created, err := client.CreateIssue(ctx, models.IssueRequest{
		Owner:  s.config.Hosting.Owner,
		Repo:   s.config.Hosting.Repo,
		Title:  title,
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return models.CreatedResource{}, err
	}

	log.Info("issue published",
		"issue_number", created.Number,
		"issue_url", created.URL)

	return created, nil
}

// BranchState resolves the branch name and working-tree state once, for
// display before the workflow starts.
func (s *PublishService) BranchState(ctx context.Context) (models.BranchState, error) {
	branch, err := s.gitService.CurrentBranch(ctx)
	if err != nil {
		return models.BranchState{}, err
	}

	dirty, err := s.gitService.HasPendingChanges(ctx)
	if err != nil {
		return models.BranchState{}, err
	}

	return models.BranchState{
		CurrentBranch:         branch,
		HasUncommittedChanges: dirty,
	}, nil
}

// hostingClientFor selects the token for the branch identity and builds the
// client with it.
func (s *PublishService) hostingClientFor(branch string) (ports.HostingClient, error) {
	token := s.config.Credentials.TokenForBranch(branch)
	if token == "" {
		return nil, domainErrors.ErrTokenMissing.WithContext("branch", branch)
	}
	return s.hostingFactory(token), nil
}

func (s *PublishService) checkRepoConfigured() error {
	if s.config.Hosting.Owner == "" || s.config.Hosting.Repo == "" {
		return domainErrors.ErrRepoNotConfigured
	}
	return nil
}

func emit(progress func(models.ProgressEvent), event models.ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
