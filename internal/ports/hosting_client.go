package ports

import (
	"context"

	"github.com/thomas-vilte/shipmate/internal/models"
)

// HostingClient issues authenticated calls against the hosting platform.
type HostingClient interface {
	// CreatePullRequest opens a pull request and returns its number and web URL.
	CreatePullRequest(ctx context.Context, request models.PullRequestRequest) (models.CreatedResource, error)
	// CreateIssue opens an issue and returns its number and web URL.
	CreateIssue(ctx context.Context, request models.IssueRequest) (models.CreatedResource, error)
}
