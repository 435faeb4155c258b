package handler

import (
	"context"
	"errors"
	"sync"
	"time"

	"zinescan/capture"
	"zinescan/config"
	"zinescan/model"
	"zinescan/storage"
)

// memStore is a mutex-guarded in-memory Store so handler tests can exercise
// concurrent scans deterministically.
type memStore struct {
	mu     sync.Mutex
	issues []model.Issue
	links  []model.Link
	events []model.ScanEvent

	failLookups bool
	failInserts bool
	failIssues  bool
}

var _ storage.Store = (*memStore)(nil)

var errStoreDown = errors.New("store unavailable")

func (m *memStore) Migrate() error { return nil }

func (m *memStore) GetLink(_ context.Context, issueID, linkID string) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLookups {
		return nil, errStoreDown
	}
	for _, link := range m.links {
		if link.ID == linkID && link.IssueID == issueID {
			found := link
			return &found, nil
		}
	}
	return nil, storage.ErrLinkNotFound
}

func (m *memStore) ListLinksByIssues(_ context.Context, issueIDs []string) ([]model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Link
	for _, link := range m.links {
		for _, id := range issueIDs {
			if link.IssueID == id {
				out = append(out, link)
			}
		}
	}
	return out, nil
}

func (m *memStore) CreateLink(_ context.Context, link *model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, *link)
	return nil
}

func (m *memStore) CreateScanEvent(_ context.Context, event *model.ScanEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInserts {
		return errStoreDown
	}
	event.ScannedAt = time.Now().UTC()
	m.events = append(m.events, *event)
	return nil
}

func (m *memStore) ListScanEventsByIssues(_ context.Context, issueIDs []string) ([]model.ScanEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ScanEvent
	for _, event := range m.events {
		for _, id := range issueIDs {
			if event.IssueID == id {
				out = append(out, event)
			}
		}
	}
	return out, nil
}

func (m *memStore) ListIssuesByProfile(_ context.Context, profileID string) ([]model.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIssues {
		return nil, errStoreDown
	}
	var out []model.Issue
	for _, issue := range m.issues {
		if issue.ProfileID == profileID {
			out = append(out, issue)
		}
	}
	return out, nil
}

func (m *memStore) CreateIssue(_ context.Context, issue *model.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issues = append(m.issues, *issue)
	return nil
}

func (m *memStore) eventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// recordingSink collects submitted capture events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []capture.Event
}

var _ capture.Sink = (*recordingSink)(nil)

func (s *recordingSink) Submit(event capture.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) all() []capture.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capture.Event(nil), s.events...)
}

func testConfig() config.Config {
	return config.Config{
		WebServer: config.WebServerConfig{
			Scheme: "http",
			IP:     "localhost",
			Port:   "8080",
		},
		Database: config.DatabaseConfig{
			OperationTimeout: 5,
		},
	}
}
