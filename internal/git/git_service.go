package git

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/shipmate/internal/config"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"github.com/thomas-vilte/shipmate/internal/logger"
	"github.com/thomas-vilte/shipmate/internal/ports"
)

var _ ports.GitService = (*GitService)(nil)

type GitService struct {
	cfg       *config.Config
	lookupEnv func(string) (string, bool)
}

func NewGitService(cfg *config.Config) *GitService {
	return &GitService{
		cfg:       cfg,
		lookupEnv: os.LookupEnv,
	}
}

// NewGitServiceWithEnv allows tests to substitute the environment lookup.
func NewGitServiceWithEnv(cfg *config.Config, lookupEnv func(string) (string, bool)) *GitService {
	return &GitService{
		cfg:       cfg,
		lookupEnv: lookupEnv,
	}
}

// CurrentBranch resolves the branch name. Inside a managed deployment the
// branch comes from the environment; otherwise git is asked directly.
func (s *GitService) CurrentBranch(ctx context.Context) (string, error) {
	if marker, ok := s.lookupEnv(s.cfg.Deployment.MarkerEnv); ok && marker != "" {
		branch, _ := s.lookupEnv(s.cfg.Deployment.BranchEnv)
		if branch == "" {
			return "", domainErrors.ErrBranchEnvMissing.
				WithContext("marker_env", s.cfg.Deployment.MarkerEnv).
				WithContext("branch_env", s.cfg.Deployment.BranchEnv)
		}
		logger.Debug(ctx, "branch resolved from deployment environment", "branch", branch)
		return branch, nil
	}

	out, stderr, err := s.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", domainErrors.ErrGetBranch.WithError(err).WithContext("stderr", stderr)
	}

	branchName := strings.TrimSpace(out)
	if branchName == "" {
		return "", domainErrors.ErrNoBranch
	}
	return branchName, nil
}

func (s *GitService) HasPendingChanges(ctx context.Context) (bool, error) {
	out, stderr, err := s.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, domainErrors.ErrGetStatus.WithError(err).WithContext("stderr", stderr)
	}
	return strings.TrimSpace(out) != "", nil
}

func (s *GitService) CommitAll(ctx context.Context, message string) error {
	if _, stderr, err := s.run(ctx, "add", "-A"); err != nil {
		return domainErrors.ErrCommitFailed.WithError(err).WithContext("stderr", stderr)
	}

	if _, stderr, err := s.run(ctx, "commit", "-m", message); err != nil {
		return domainErrors.ErrCommitFailed.WithError(err).WithContext("stderr", stderr)
	}

	logger.Debug(ctx, "created commit", "message", message)
	return nil
}

func (s *GitService) Push(ctx context.Context, forceWithLease bool) error {
	args := []string{"push"}
	if forceWithLease {
		args = append(args, "--force-with-lease")
	}
	args = append(args, "-u", "origin", "HEAD")

	if _, stderr, err := s.run(ctx, args...); err != nil {
		return domainErrors.ErrPushRejected.WithError(err).
			WithContext("force_with_lease", forceWithLease).
			WithContext("stderr", stderr)
	}
	return nil
}

func (s *GitService) Fetch(ctx context.Context) error {
	if _, stderr, err := s.run(ctx, "fetch", "origin", s.cfg.Hosting.BaseBranch); err != nil {
		return domainErrors.ErrFetchFailed.WithError(err).WithContext("stderr", stderr)
	}
	return nil
}

// RebaseOntoMain replays the current branch onto the fetched base branch.
// On any failure the rebase is aborted first, restoring the pre-rebase tip.
func (s *GitService) RebaseOntoMain(ctx context.Context) error {
	baseRef := "origin/" + s.cfg.Hosting.BaseBranch

	_, stderr, err := s.run(ctx, "rebase", baseRef)
	if err == nil {
		return nil
	}

	if _, abortStderr, abortErr := s.run(ctx, "rebase", "--abort"); abortErr != nil {
		logger.Warn(ctx, "rebase abort failed",
			"error", abortErr,
			"stderr", abortStderr)
	}

	return domainErrors.ErrRebaseConflict.WithError(err).
		WithContext("base", baseRef).
		WithContext("stderr", stderr)
}

func (s *GitService) DiffAgainstMain(ctx context.Context) (string, error) {
	baseRef := "origin/" + s.cfg.Hosting.BaseBranch

	out, stderr, err := s.run(ctx, "diff", baseRef+"...HEAD")
	if err != nil {
		return "", domainErrors.ErrGetDiff.WithError(err).WithContext("stderr", stderr)
	}
	return out, nil
}

// run executes a git command, returning stdout and captured stderr.
func (s *GitService) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return string(out), strings.TrimSpace(stderr.String()), err
	}
	return string(out), "", nil
}
