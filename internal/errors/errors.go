package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeEnvironment   ErrorType = "ENVIRONMENT"
	TypeSync          ErrorType = "SYNC"
	TypeConflict      ErrorType = "CONFLICT"
	TypeHosting       ErrorType = "HOSTING"
	TypeAI            ErrorType = "AI"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
		if body, ok := e.Context["response_body"].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "AI API key is missing", nil).
				WithSuggestion("Export it first: export GEMINI_API_KEY=<key>")

	ErrTokenMissing = NewAppError(TypeConfiguration, "Hosting token is missing", nil).
			WithSuggestion("Export it first: export GITHUB_TOKEN=<token>")

	ErrBranchEnvMissing = NewAppError(TypeConfiguration, "Deployment branch variable is not set", nil).
				WithSuggestion("The deployment marker is present but the branch variable is empty; set it or unset the marker")

	ErrRepoNotConfigured = NewAppError(TypeConfiguration, "Repository owner/name is not configured", nil).
				WithSuggestion("Run: shipmate config init")
)

// Environment errors (version-control tool failures)
var (
	ErrGetBranch = NewAppError(TypeEnvironment, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrNoBranch = NewAppError(TypeEnvironment, "No branch detected", nil).
			WithSuggestion("Create a branch first: git checkout -b <branch-name>")

	ErrGetStatus = NewAppError(TypeEnvironment, "Failed to read working tree status", nil).
			WithSuggestion("Make sure you are inside a git repository")

	ErrCommitFailed = NewAppError(TypeEnvironment, "Failed to create commit", nil).
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")

	ErrFetchFailed = NewAppError(TypeEnvironment, "Failed to fetch from remote", nil).
			WithSuggestion("Check your network connection and remote access: git remote -v")

	ErrGetDiff = NewAppError(TypeEnvironment, "Failed to get diff against base branch", nil).
			WithSuggestion("Make sure the base branch was fetched: git fetch origin main")
)

// Sync errors
var (
	ErrPushRejected = NewAppError(TypeSync, "Failed to push current branch", nil).
		WithSuggestion("Resolve the local state manually, then retry: git push")
)

// Conflict errors
var (
	ErrRebaseConflict = NewAppError(TypeConflict, "Rebase onto base branch produced conflicts", nil).
		WithSuggestion("The rebase was aborted; rebase manually and resolve conflicts:\n   git fetch origin main && git rebase origin/main")
)

// Hosting errors
var (
	ErrHostingAPI = NewAppError(TypeHosting, "hosting API request failed", nil).
			WithSuggestion("Check repository name and token permissions")

	ErrTokenInvalid = NewAppError(TypeHosting, "hosting token is invalid or expired", nil).
			WithSuggestion("Generate a new token at: https://github.com/settings/tokens")
)

// AI errors
var (
	ErrEmptyAIResponse = NewAppError(TypeAI, "empty response from AI", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrNoDiff = NewAppError(TypeAI, "no differences against base branch to summarize", nil).
			WithSuggestion("Commit some changes first: git status")
)
