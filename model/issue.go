package model

import "time"

// Issue is a published or draft zine issue. Only identity, ownership and
// display metadata matter here; editorial content lives with the zine editor.
type Issue struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ProfileID   string    `json:"profileId" gorm:"size:36;not null;index"`
	Title       string    `json:"title" gorm:"type:text"`
	Slug        string    `json:"slug" gorm:"size:128;index"`
	CoverImgURL string    `json:"cover_img_url" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Issue) TableName() string {
	return "issues"
}
