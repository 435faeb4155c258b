package model

import "time"

// ScanEvent is an immutable fact: this link was scanned at this time, from
// this context. Rows are append-only; nothing in the service updates or
// deletes them. ScannedAt is assigned at insert time by the store, never
// taken from the client.
type ScanEvent struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	IssueID   string    `json:"issueId" gorm:"size:36;not null;index"`
	LinkID    string    `json:"linkId" gorm:"size:36;not null;index"`
	ScannedAt time.Time `json:"scannedAt" gorm:"autoCreateTime;index"`
	UserAgent string    `json:"userAgent,omitempty" gorm:"type:text"`
	IPAddress string    `json:"ipAddress,omitempty" gorm:"size:64"`
	Referer   string    `json:"referer,omitempty" gorm:"type:text"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
