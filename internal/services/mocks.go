package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/shipmate/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockMessageGenerator struct {
		mock.Mock
	}

	MockHostingClient struct {
		mock.Mock
	}
)

func (m *MockGitService) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) HasPendingChanges(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitService) CommitAll(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockGitService) Push(ctx context.Context, forceWithLease bool) error {
	args := m.Called(ctx, forceWithLease)
	return args.Error(0)
}

func (m *MockGitService) Fetch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGitService) RebaseOntoMain(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGitService) DiffAgainstMain(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockMessageGenerator) Summarize(ctx context.Context, diff string) (models.GeneratedMessage, error) {
	args := m.Called(ctx, diff)
	return args.Get(0).(models.GeneratedMessage), args.Error(1)
}

func (m *MockHostingClient) CreatePullRequest(ctx context.Context, request models.PullRequestRequest) (models.CreatedResource, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(models.CreatedResource), args.Error(1)
}

func (m *MockHostingClient) CreateIssue(ctx context.Context, request models.IssueRequest) (models.CreatedResource, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(models.CreatedResource), args.Error(1)
}
