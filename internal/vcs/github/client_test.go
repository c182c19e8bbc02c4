package github

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"github.com/thomas-vilte/shipmate/internal/models"
)

func ghResponse(statusCode int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: statusCode}}
}

func TestGitHubClient_CreatePullRequest(t *testing.T) {
	t.Run("returns number and URL on success", func(t *testing.T) {
		mockPR := new(MockPRService)
		client := NewGitHubClientWithServices(mockPR, new(MockIssuesService))

		mockPR.On("Create", mock.Anything, "acme", "widget", mock.MatchedBy(func(pr *github.NewPullRequest) bool {
			return pr.GetTitle() == "Add login flow" &&
				pr.GetBody() == "This PR adds OAuth login." &&
				pr.GetHead() == "feature-x" &&
				pr.GetBase() == "main"
		})).Return(&github.PullRequest{Number: github.Ptr(42)}, ghResponse(http.StatusCreated), nil)

		created, err := client.CreatePullRequest(context.Background(), models.PullRequestRequest{
			Owner: "acme",
			Repo:  "widget",
			Title: "Add login flow",
			Body:  "This PR adds OAuth login.",
			Head:  "feature-x",
			Base:  "main",
		})

		require.NoError(t, err)
		assert.Equal(t, 42, created.Number)
		assert.Equal(t, "https://github.com/acme/widget/pull/42", created.URL)
		mockPR.AssertExpectations(t)
	})

	t.Run("unauthorized maps to invalid token", func(t *testing.T) {
		mockPR := new(MockPRService)
		client := NewGitHubClientWithServices(mockPR, new(MockIssuesService))

		apiErr := &github.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusUnauthorized},
			Message:  "Bad credentials",
		}
		mockPR.On("Create", mock.Anything, "acme", "widget", mock.Anything).
			Return(nil, ghResponse(http.StatusUnauthorized), apiErr)

		_, err := client.CreatePullRequest(context.Background(), models.PullRequestRequest{
			Owner: "acme", Repo: "widget", Head: "feature-x", Base: "main",
		})

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeHosting, appErr.Type)
		assert.Equal(t, domainErrors.ErrTokenInvalid.Message, appErr.Message)
	})

	t.Run("API error carries the response body", func(t *testing.T) {
		mockPR := new(MockPRService)
		client := NewGitHubClientWithServices(mockPR, new(MockIssuesService))

		apiErr := &github.ErrorResponse{
			Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
			Message:  "Validation Failed: A pull request already exists",
		}
		mockPR.On("Create", mock.Anything, "acme", "widget", mock.Anything).
			Return(nil, ghResponse(http.StatusUnprocessableEntity), apiErr)

		_, err := client.CreatePullRequest(context.Background(), models.PullRequestRequest{
			Owner: "acme", Repo: "widget", Head: "feature-x", Base: "main",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Validation Failed: A pull request already exists")
	})
}

func TestGitHubClient_CreateIssue(t *testing.T) {
	t.Run("passes labels through and returns the issue URL", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(new(MockPRService), mockIssues)

		mockIssues.On("Create", mock.Anything, "acme", "widget", mock.MatchedBy(func(issue *github.IssueRequest) bool {
			return issue.GetTitle() == "Flaky sync on CI" &&
				issue.GetBody() == "Rebase fails intermittently." &&
				len(*issue.Labels) == 2 &&
				(*issue.Labels)[0] == "bug"
		})).Return(&github.Issue{Number: github.Ptr(7)}, ghResponse(http.StatusCreated), nil)

		created, err := client.CreateIssue(context.Background(), models.IssueRequest{
			Owner:  "acme",
			Repo:   "widget",
			Title:  "Flaky sync on CI",
			Body:   "Rebase fails intermittently.",
			Labels: []string{"bug", "ci"},
		})

		require.NoError(t, err)
		assert.Equal(t, 7, created.Number)
		assert.Equal(t, "https://github.com/acme/widget/issues/7", created.URL)
		mockIssues.AssertExpectations(t)
	})

	t.Run("nil labels become an empty list", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(new(MockPRService), mockIssues)

		mockIssues.On("Create", mock.Anything, "acme", "widget", mock.MatchedBy(func(issue *github.IssueRequest) bool {
			return issue.Labels != nil && len(*issue.Labels) == 0
		})).Return(&github.Issue{Number: github.Ptr(8)}, ghResponse(http.StatusCreated), nil)

		_, err := client.CreateIssue(context.Background(), models.IssueRequest{
			Owner: "acme", Repo: "widget", Title: "No labels",
		})
		require.NoError(t, err)
	})

	t.Run("failure without a response still reports a hosting error", func(t *testing.T) {
		mockIssues := new(MockIssuesService)
		client := NewGitHubClientWithServices(new(MockPRService), mockIssues)

		mockIssues.On("Create", mock.Anything, "acme", "widget", mock.Anything).
			Return(nil, nil, context.DeadlineExceeded)

		_, err := client.CreateIssue(context.Background(), models.IssueRequest{
			Owner: "acme", Repo: "widget", Title: "timeout",
		})

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeHosting, appErr.Type)
	})
}
