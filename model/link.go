package model

import (
	"fmt"
	"time"
)

// Link is one trackable destination attached to a zine issue. The redirect
// path is derived from (issue id, link id) and stays stable for the life of
// the link, so printed QR codes never go stale.
type Link struct {
	ID           string    `json:"linkId" gorm:"primaryKey;size:36"`
	IssueID      string    `json:"issueId" gorm:"primaryKey;size:36;index"`
	Label        string    `json:"label" gorm:"type:text"`
	URL          string    `json:"url" gorm:"type:text;not null"`
	QRPath       string    `json:"qr_path" gorm:"type:text"`
	RedirectPath string    `json:"redirectPath" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Link) TableName() string {
	return "links"
}

// ScanPath returns the public path that triggers a scan for the given pair.
func ScanPath(issueID, linkID string) string {
	return fmt.Sprintf("/qr/%s/%s", issueID, linkID)
}
