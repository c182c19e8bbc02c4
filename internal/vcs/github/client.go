package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"github.com/thomas-vilte/shipmate/internal/logger"
	"github.com/thomas-vilte/shipmate/internal/models"
	"github.com/thomas-vilte/shipmate/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.HostingClient = (*GitHubClient)(nil)

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pr *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
}

func NewGitHubClient(token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
	}
}

func NewGitHubClientWithServices(prService PullRequestsService, issuesService IssuesService) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
	}
}

func (ghc *GitHubClient) CreatePullRequest(ctx context.Context, req models.PullRequestRequest) (models.CreatedResource, error) {
	log := logger.FromContext(ctx)

	log.Info("creating github pull request",
		"owner", req.Owner,
		"repo", req.Repo,
		"head", req.Head,
		"base", req.Base)

	newPR := &github.NewPullRequest{
		Title: github.Ptr(req.Title),
		Body:  github.Ptr(req.Body),
		Head:  github.Ptr(req.Head),
		Base:  github.Ptr(req.Base),
	}

	pr, resp, err := ghc.prService.Create(ctx, req.Owner, req.Repo, newPR)
	if err != nil {
		log.Error("failed to create github pull request",
			"error", err,
			"owner", req.Owner,
			"repo", req.Repo)
		return models.CreatedResource{}, hostingError(resp, err, "create pull request")
	}

	created := models.CreatedResource{
		Number: pr.GetNumber(),
		URL:    fmt.Sprintf("https://github.com/%s/%s/pull/%d", req.Owner, req.Repo, pr.GetNumber()),
	}

	log.Info("github pull request created",
		"pr_number", created.Number,
		"pr_url", created.URL)

	return created, nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, req models.IssueRequest) (models.CreatedResource, error) {
	log := logger.FromContext(ctx)

	log.Info("creating github issue",
		"owner", req.Owner,
		"repo", req.Repo,
		"title", req.Title,
		"labels_count", len(req.Labels))

	labels := req.Labels
	if labels == nil {
		labels = []string{}
	}

	issueRequest := &github.IssueRequest{
		Title:  github.Ptr(req.Title),
		Body:   github.Ptr(req.Body),
		Labels: &labels,
	}

	issue, resp, err := ghc.issuesService.Create(ctx, req.Owner, req.Repo, issueRequest)
	if err != nil {
		log.Error("failed to create github issue",
			"error", err,
			"owner", req.Owner,
			"repo", req.Repo)
		return models.CreatedResource{}, hostingError(resp, err, "create issue")
	}

	created := models.CreatedResource{
		Number: issue.GetNumber(),
		URL:    fmt.Sprintf("https://github.com/%s/%s/issues/%d", req.Owner, req.Repo, issue.GetNumber()),
	}

	log.Info("github issue created",
		"issue_number", created.Number,
		"issue_url", created.URL)

	return created, nil
}

// hostingError maps an API failure to the error taxonomy. The response body,
// as decoded by the client library, travels with the error unmodified.
func hostingError(resp *github.Response, err error, operation string) error {
	if resp == nil {
		return domainErrors.ErrHostingAPI.WithError(err).WithContext("operation", operation)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domainErrors.ErrTokenInvalid.WithError(err).
			WithContext("operation", operation)
	}

	return domainErrors.ErrHostingAPI.WithError(err).
		WithContext("operation", operation).
		WithContext("status_code", resp.StatusCode).
		WithContext("response_body", responseBody(err))
}

// responseBody recovers the error payload. go-github consumes the body and
// decodes it into ErrorResponse before the caller sees it, so the decoded
// message is the closest thing to the wire bytes still available.
func responseBody(err error) string {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return ghErr.Message
	}
	return err.Error()
}
