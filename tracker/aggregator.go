package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"zinescan/model"
	"zinescan/storage"
)

// Aggregator answers "how many scans, and when" for a creator's issues on
// demand. Every call re-reads and re-folds from scratch; per-creator volume
// is small enough that no incremental counters are maintained.
type Aggregator struct {
	store storage.Store
}

func NewAggregator(store storage.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Aggregate folds all scan events for the profile's issues into per-issue,
// per-link and per-day totals.
//
// Events whose timestamp is zero-valued still count toward every total but
// are excluded from the day buckets, since they carry no usable date.
func (a *Aggregator) Aggregate(ctx context.Context, profileID string) (*model.CreatorAnalytics, error) {
	out := &model.CreatorAnalytics{
		Issues:           []model.IssueAnalytics{},
		QRCodes:          []model.QRCodeStats{},
		DeviceBreakdown:  map[string]int{},
		BrowserBreakdown: map[string]int{},
	}

	issues, err := a.store.ListIssuesByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	if len(issues) == 0 {
		// Nothing owned; skip the event and link reads entirely.
		return out, nil
	}

	issueIDs := make([]string, 0, len(issues))
	for _, issue := range issues {
		issueIDs = append(issueIDs, issue.ID)
	}

	events, err := a.store.ListScanEventsByIssues(ctx, issueIDs)
	if err != nil {
		return nil, fmt.Errorf("listing scan events: %w", err)
	}

	links, err := a.store.ListLinksByIssues(ctx, issueIDs)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	perIssue := make(map[string]int64)
	perLink := make(map[string]int64)
	perIssueDay := make(map[string]map[string]int64)
	perLinkDay := make(map[string]map[string]int64)

	for _, event := range events {
		out.TotalScans++
		perIssue[event.IssueID]++
		perLink[event.LinkID]++

		if !event.ScannedAt.IsZero() {
			day := event.ScannedAt.UTC().Format("2006-01-02")
			bumpDay(perIssueDay, event.IssueID, day)
			bumpDay(perLinkDay, event.LinkID, day)
		}

		if event.UserAgent != "" {
			out.DeviceBreakdown[deviceType(event.UserAgent)]++
			out.BrowserBreakdown[browserType(event.UserAgent)]++
		}
	}

	linksByIssue := make(map[string][]model.Link)
	for _, link := range links {
		linksByIssue[link.IssueID] = append(linksByIssue[link.IssueID], link)
	}

	issueMeta := make(map[string]model.Issue, len(issues))
	for _, issue := range issues {
		issueMeta[issue.ID] = issue
	}

	for _, issue := range issues {
		ia := model.IssueAnalytics{
			ID:             issue.ID,
			Title:          issue.Title,
			Slug:           issue.Slug,
			CoverImgURL:    issue.CoverImgURL,
			TotalScans:     perIssue[issue.ID],
			ScanCountByDay: daySeries(perIssueDay[issue.ID]),
			Links:          []model.LinkStats{},
		}
		for _, link := range linksByIssue[issue.ID] {
			ia.Links = append(ia.Links, model.LinkStats{
				LinkID: link.ID,
				Label:  link.Label,
				URL:    link.URL,
				Scans:  perLink[link.ID],
			})
		}
		out.Issues = append(out.Issues, ia)
	}

	for _, link := range links {
		parent := issueMeta[link.IssueID]
		out.QRCodes = append(out.QRCodes, model.QRCodeStats{
			LinkID:         link.ID,
			Label:          link.Label,
			URL:            link.URL,
			QRPath:         link.QRPath,
			IssueID:        link.IssueID,
			IssueTitle:     parent.Title,
			IssueSlug:      parent.Slug,
			Scans:          perLink[link.ID],
			ScanCountByDay: daySeries(perLinkDay[link.ID]),
		})
	}

	return out, nil
}

func bumpDay(buckets map[string]map[string]int64, key, day string) {
	if buckets[key] == nil {
		buckets[key] = make(map[string]int64)
	}
	buckets[key][day]++
}

// daySeries converts a day-count map into a series sorted ascending by date.
func daySeries(byDay map[string]int64) []model.DayCount {
	series := make([]model.DayCount, 0, len(byDay))
	for day, count := range byDay {
		series = append(series, model.DayCount{Date: day, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// deviceType extracts device type from user agent
func deviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return "Tablet"
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return "Mobile"
	case strings.Contains(ua, "bot") || strings.Contains(ua, "crawler") || strings.Contains(ua, "spider"):
		return "Bot"
	}
	return "Desktop"
}

// browserType extracts browser type from user agent
func browserType(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "edg/") || strings.Contains(ua, "edge"):
		return "Edge"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		return "Opera"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "bot") || strings.Contains(ua, "crawler"):
		return "Bot"
	}
	return "Other"
}
