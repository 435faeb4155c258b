package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"zinescan/model"
)

// GormStore implements Store on a gorm DB handle (postgres in production,
// sqlite in tests).
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&model.Issue{}, &model.Link{}, &model.ScanEvent{})
}

func (s *GormStore) GetLink(ctx context.Context, issueID, linkID string) (*model.Link, error) {
	var link model.Link
	err := s.db.WithContext(ctx).
		Where("id = ? AND issue_id = ?", linkID, issueID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormStore) ListLinksByIssues(ctx context.Context, issueIDs []string) ([]model.Link, error) {
	var links []model.Link
	err := s.db.WithContext(ctx).
		Where("issue_id IN ?", issueIDs).
		Order("created_at asc").
		Find(&links).Error
	return links, err
}

func (s *GormStore) CreateLink(ctx context.Context, link *model.Link) error {
	if link.RedirectPath == "" {
		link.RedirectPath = model.ScanPath(link.IssueID, link.ID)
	}
	return s.db.WithContext(ctx).Create(link).Error
}

func (s *GormStore) CreateScanEvent(ctx context.Context, event *model.ScanEvent) error {
	// ScannedAt is authoritative at write time; never trust what the caller
	// put in the struct.
	event.ScannedAt = time.Now().UTC()
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *GormStore) ListScanEventsByIssues(ctx context.Context, issueIDs []string) ([]model.ScanEvent, error) {
	var events []model.ScanEvent
	err := s.db.WithContext(ctx).
		Where("issue_id IN ?", issueIDs).
		Order("scanned_at desc").
		Find(&events).Error
	return events, err
}

func (s *GormStore) ListIssuesByProfile(ctx context.Context, profileID string) ([]model.Issue, error) {
	var issues []model.Issue
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at asc").
		Find(&issues).Error
	return issues, err
}

func (s *GormStore) CreateIssue(ctx context.Context, issue *model.Issue) error {
	return s.db.WithContext(ctx).Create(issue).Error
}
