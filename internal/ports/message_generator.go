package ports

import (
	"context"

	"github.com/thomas-vilte/shipmate/internal/models"
)

// MessageGenerator turns a textual diff into a PR title and body.
type MessageGenerator interface {
	Summarize(ctx context.Context, diff string) (models.GeneratedMessage, error)
}
