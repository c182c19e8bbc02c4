package models

type (
	// BranchState describes the repository state resolved once per run.
	BranchState struct {
		CurrentBranch         string
		HasUncommittedChanges bool
	}

	// GeneratedMessage is the PR title/body derived from the AI response.
	// Title is the text before the first blank-line boundary, trimmed.
	GeneratedMessage struct {
		Title string
		Body  string
	}

	// PullRequestRequest describes the target repository and branch pair.
	PullRequestRequest struct {
		Owner string
		Repo  string
		Title string
		Body  string
		Head  string
		Base  string
	}

	// IssueRequest describes a standalone issue to create.
	IssueRequest struct {
		Owner  string
		Repo   string
		Title  string
		Body   string
		Labels []string
	}

	// CreatedResource is the number and web URL of a created PR or issue.
	CreatedResource struct {
		Number int
		URL    string
	}
)
