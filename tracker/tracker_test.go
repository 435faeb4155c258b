package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"zinescan/model"
	"zinescan/storage"
)

// fakeStore is a mutex-guarded in-memory Store for tracker tests. It mimics
// the real store's contract: conjunction link lookup, store-assigned scan
// timestamps, newest-first event listing.
type fakeStore struct {
	mu     sync.Mutex
	issues []model.Issue
	links  []model.Link
	events []model.ScanEvent

	failIssues bool
	failEvents bool
	failLinks  bool
	now        time.Time
}

var _ storage.Store = (*fakeStore)(nil)

var errStoreDown = errors.New("store unavailable")

func newFakeStore() *fakeStore {
	return &fakeStore{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeStore) Migrate() error { return nil }

func (f *fakeStore) GetLink(_ context.Context, issueID, linkID string) (*model.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, link := range f.links {
		if link.ID == linkID && link.IssueID == issueID {
			found := link
			return &found, nil
		}
	}
	return nil, storage.ErrLinkNotFound
}

func (f *fakeStore) ListLinksByIssues(_ context.Context, issueIDs []string) ([]model.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLinks {
		return nil, errStoreDown
	}
	var out []model.Link
	for _, link := range f.links {
		if containsID(issueIDs, link.IssueID) {
			out = append(out, link)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateLink(_ context.Context, link *model.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, *link)
	return nil
}

func (f *fakeStore) CreateScanEvent(_ context.Context, event *model.ScanEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEvents {
		return errStoreDown
	}
	event.ScannedAt = f.now
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeStore) ListScanEventsByIssues(_ context.Context, issueIDs []string) ([]model.ScanEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failEvents {
		return nil, errStoreDown
	}
	var out []model.ScanEvent
	for _, event := range f.events {
		if containsID(issueIDs, event.IssueID) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (f *fakeStore) ListIssuesByProfile(_ context.Context, profileID string) ([]model.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIssues {
		return nil, errStoreDown
	}
	var out []model.Issue
	for _, issue := range f.issues {
		if issue.ProfileID == profileID {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateIssue(_ context.Context, issue *model.Issue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues = append(f.issues, *issue)
	return nil
}

// addEvent inserts an event without the store-assigned timestamp rules, so
// tests control ScannedAt (including zero values).
func (f *fakeStore) addEvent(event model.ScanEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func issue(id, profileID, title, slug string) *model.Issue {
	return &model.Issue{ID: id, ProfileID: profileID, Title: title, Slug: slug}
}

func link(id, issueID, label, url string) *model.Link {
	return &model.Link{ID: id, IssueID: issueID, Label: label, URL: url}
}

func event(issueID, linkID string, scannedAt time.Time) model.ScanEvent {
	return model.ScanEvent{
		ID:        uuid.New().String(),
		IssueID:   issueID,
		LinkID:    linkID,
		ScannedAt: scannedAt,
	}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
