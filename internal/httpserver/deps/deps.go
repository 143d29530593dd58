package deps

import (
	"context"
	"time"

	"github.com/linktracker/linktracker/internal/cache"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/sources/github"
)

// GitHubService is what handlers need from the GitHub client. An
// interface so handler tests can fake the upstream.
type GitHubService interface {
	CreateIssue(ctx context.Context, payload github.IssuePayload) (*github.Issue, error)
	UpdateIssue(ctx context.Context, number int, payload github.IssuePayload) (*github.Issue, error)
	CloseIssue(ctx context.Context, number int) error
	ListLabels(ctx context.Context) ([]github.Label, error)
	CreateLabel(ctx context.Context, name, color string) (*github.Label, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Cache  *cache.BookmarkCache // in-memory bookmark snapshot
	GitHub GitHubService        // upstream writes and label reads
}
