package ports

import "context"

// GitService defines the version-control operations the workflow needs.
// Implementations shell out to git; tests substitute an in-memory fake.
type GitService interface {
	// CurrentBranch resolves the branch name, preferring the managed
	// deployment environment override when its marker is present.
	CurrentBranch(ctx context.Context) (string, error)
	// HasPendingChanges reports whether the working tree has any
	// uncommitted modification.
	HasPendingChanges(ctx context.Context) (bool, error)
	// CommitAll stages every change and commits it with the given message.
	CommitAll(ctx context.Context, message string) error
	// Push pushes the current branch; with forceWithLease it uses a safe
	// force-push that refuses to clobber unseen remote updates.
	Push(ctx context.Context, forceWithLease bool) error
	// Fetch updates local knowledge of the remote base branch.
	Fetch(ctx context.Context) error
	// RebaseOntoMain replays the current branch onto the fetched base
	// branch. On conflict the in-progress rebase is aborted before the
	// error surfaces, so the tree is never left mid-rebase.
	RebaseOntoMain(ctx context.Context) error
	// DiffAgainstMain returns the textual diff between the current branch
	// and the remote base branch, used verbatim as AI input.
	DiffAgainstMain(ctx context.Context) (string, error)
}
