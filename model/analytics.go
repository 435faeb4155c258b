package model

// CreatorAnalytics is the full analytics payload for one creator: every owned
// issue with its scan totals and day series, plus a flat list of all QR links
// across issues.
type CreatorAnalytics struct {
	TotalScans       int64            `json:"totalScans"`
	Issues           []IssueAnalytics `json:"issues"`
	QRCodes          []QRCodeStats    `json:"qrCodes"`
	DeviceBreakdown  map[string]int   `json:"deviceBreakdown"`
	BrowserBreakdown map[string]int   `json:"browserBreakdown"`
}

// IssueAnalytics holds per-issue totals and the per-day time series.
type IssueAnalytics struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	CoverImgURL    string      `json:"cover_img_url"`
	TotalScans     int64       `json:"totalScans"`
	ScanCountByDay []DayCount  `json:"scanCountByDay"`
	Links          []LinkStats `json:"links"`
}

// LinkStats is the per-link breakdown nested under an issue.
type LinkStats struct {
	LinkID string `json:"linkId"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Scans  int64  `json:"scans"`
}

// QRCodeStats is one link annotated with its parent issue, for the flat
// cross-issue listing.
type QRCodeStats struct {
	LinkID         string     `json:"linkId"`
	Label          string     `json:"label"`
	URL            string     `json:"url"`
	QRPath         string     `json:"qr_path"`
	IssueID        string     `json:"issueId"`
	IssueTitle     string     `json:"issueTitle"`
	IssueSlug      string     `json:"issueSlug"`
	Scans          int64      `json:"scans"`
	ScanCountByDay []DayCount `json:"scanCountByDay"`
}

// DayCount is a point in a day-bucketed time series.
type DayCount struct {
	Date  string `json:"date"` // UTC calendar date, "YYYY-MM-DD"
	Count int64  `json:"count"`
}
