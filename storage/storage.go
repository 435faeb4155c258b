package storage

import (
	"context"
	"errors"

	"zinescan/model"
)

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrIssueNotFound = errors.New("issue not found")
)

// Store is the relational backing store boundary. Links and issues are
// written by the zine editor outside this service; scan events are the only
// thing this service appends.
type Store interface {
	LinkStore
	ScanEventStore
	IssueStore
	Migrate() error
}

type LinkStore interface {
	// GetLink resolves a link by the (issueID, linkID) conjunction. A linkID
	// that exists under a different issue does not resolve.
	GetLink(ctx context.Context, issueID, linkID string) (*model.Link, error)
	// ListLinksByIssues retrieves all links owned by the given issues.
	ListLinksByIssues(ctx context.Context, issueIDs []string) ([]model.Link, error)
	// CreateLink stores a link. Used by migrations and tests; the zine editor
	// owns link CRUD in production.
	CreateLink(ctx context.Context, link *model.Link) error
}

type ScanEventStore interface {
	// CreateScanEvent appends one immutable scan event. ScannedAt is assigned
	// at insert time; any caller-supplied value is ignored.
	CreateScanEvent(ctx context.Context, event *model.ScanEvent) error
	// ListScanEventsByIssues retrieves all scan events for the given issues,
	// newest first.
	ListScanEventsByIssues(ctx context.Context, issueIDs []string) ([]model.ScanEvent, error)
}

type IssueStore interface {
	// ListIssuesByProfile retrieves the issues owned by a creator profile.
	ListIssuesByProfile(ctx context.Context, profileID string) ([]model.Issue, error)
	// CreateIssue stores an issue. Used by migrations and tests.
	CreateIssue(ctx context.Context, issue *model.Issue) error
}
